package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie for the given roles and
// returns the caller's session. The returned Roles are the roles the
// cookie was validated against, not the user's full role list.
func ValidateSession(cookie string, roles []string) (*types.Session, error) {
	if authClient == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	// The user payload mirrors the Authorizer GraphQL user object; only
	// the id and email are needed here.
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	raw, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("unreadable user payload: %w", err)
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("unreadable user payload: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("session has no user id")
	}

	return &types.Session{UserID: user.ID, Email: user.Email, Roles: roles}, nil
}
