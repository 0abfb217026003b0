package commands

import (
	"sync"
	"time"
)

// ConfigPersister implements wix.TokenPersister on the CLI config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateSiteToken stores the token for the configured site. An empty token
// clears the stored session.
func (p *ConfigPersister) UpdateSiteToken(siteID, token string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadFileConfig()
	if err != nil {
		return err
	}

	if siteID != "" && config.SiteID == "" {
		config.SiteID = siteID
	}

	config.AccessToken = token
	config.AccessTokenExpiresAt = nil

	if !expiresAt.IsZero() {
		expiresAt = expiresAt.UTC()
		config.AccessTokenExpiresAt = &expiresAt
	}

	switch {
	case token == "":
		config.RefreshToken = ""
	case refreshToken != "":
		config.RefreshToken = refreshToken
	}

	now := time.Now().UTC()
	config.LastRefreshed = &now

	return saveConfigStruct(config)
}
