package notification

import (
	"context"
	"log"

	authrepo "chorehub-backend/internal/auth/repository"
	"chorehub-backend/pkg/fcm"
)

// Dispatcher sends deadline notifications to members' registered devices via
// FCM, honoring each member's notification preference. A nil FCM client
// disables delivery without failing callers.
type Dispatcher struct {
	userRepo  authrepo.UserRepository
	fcmRepo   authrepo.FCMTokenRepository
	fcmClient *fcm.Client
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(userRepo authrepo.UserRepository, fcmRepo authrepo.FCMTokenRepository, fcmClient *fcm.Client) *Dispatcher {
	return &Dispatcher{
		userRepo:  userRepo,
		fcmRepo:   fcmRepo,
		fcmClient: fcmClient,
	}
}

// Notify delivers a push notification to every device of the given member.
// Returns whether at least one device received it. Never returns an error;
// delivery problems are logged so sweeps can continue.
func (d *Dispatcher) Notify(ctx context.Context, memberID, title, body string, data map[string]string) bool {
	user, err := d.userRepo.FindByID(memberID)
	if err != nil {
		log.Printf("[Dispatcher] Error looking up member %s: %v", memberID, err)
		return false
	}
	// A missing profile defaults to notifications enabled; there are just
	// no devices to deliver to.
	if user != nil && !user.NotifyDeadline {
		return false
	}

	if d.fcmClient == nil {
		return false
	}

	tokens, err := d.fcmRepo.GetTokensByUserID(memberID)
	if err != nil {
		log.Printf("[Dispatcher] Error getting FCM tokens for member %s: %v", memberID, err)
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := d.fcmClient.SendToDevices(ctx, tokenStrings, fcm.NotificationData{
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		log.Printf("[Dispatcher] Error sending notification to member %s: %v", memberID, err)
		return false
	}

	// Cleanup dead tokens
	for _, token := range failedTokens {
		if err := d.fcmRepo.DeleteToken(token); err != nil {
			log.Printf("[Dispatcher] Error deleting stale token: %v", err)
		}
	}

	return len(failedTokens) < len(tokenStrings)
}
