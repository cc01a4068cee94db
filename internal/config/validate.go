package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := validateBaseURL(c.Server.PublicBaseURL); err != nil {
		return fmt.Errorf("server.public_base_url: %w", err)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Signing.validate(); err != nil {
		return fmt.Errorf("signing: %w", err)
	}

	if c.RateLimit.PublicPerMinute <= 0 || c.RateLimit.CompanyPerMinute <= 0 {
		return fmt.Errorf("rate_limit: budgets must be > 0")
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendLocal:
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local backend")
		}
	case StorageBackendS3:
		if s.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 backend")
		}
		if (s.S3AccessKeyID == "") != (s.S3SecretKey == "") {
			return fmt.Errorf("s3_access_key_id and s3_secret_key must be set together")
		}
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", StorageBackendLocal, StorageBackendS3, s.Backend)
	}
	if s.PresignTTL <= 0 {
		return fmt.Errorf("presign_ttl must be > 0 (got %v)", s.PresignTTL)
	}
	if s.MaxTemplateSize <= 0 {
		return fmt.Errorf("max_template_size must be > 0 (got %d)", s.MaxTemplateSize)
	}
	return nil
}

func (s *SigningConfig) validate() error {
	if s.AccessTokenBytes < 16 {
		return fmt.Errorf("access_token_bytes must be >= 16 (got %d)", s.AccessTokenBytes)
	}
	if s.SealLease <= 0 {
		return fmt.Errorf("seal_lease must be > 0 (got %v)", s.SealLease)
	}
	if s.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be > 0 (got %d)", s.MaxRequestBytes)
	}
	if s.MaxSignatureBytes <= 0 || int64(s.MaxSignatureBytes) > s.MaxRequestBytes {
		return fmt.Errorf("max_signature_bytes must be in (0, max_request_bytes] (got %d)", s.MaxSignatureBytes)
	}
	if s.LegacyRenderWidth <= 0 {
		return fmt.Errorf("legacy_render_width must be > 0 (got %v)", s.LegacyRenderWidth)
	}
	if err := validateBaseURL(s.LinkBaseURL); err != nil {
		return fmt.Errorf("link_base_url: %w", err)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
