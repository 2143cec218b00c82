package ocr

import (
	"encoding/json"
	"os"
	"strings"

	"google.golang.org/api/option"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
)

// Credential is a resolved Google Cloud credential source for the Vision
// client. The two implementations are FileCredential and FieldCredential.
type Credential interface {
	// ClientOption converts the credential into a client option for the
	// Vision API.
	ClientOption() option.ClientOption
}

// FileCredential authenticates with a service account key file on disk.
type FileCredential struct {
	Path string
}

func (c FileCredential) ClientOption() option.ClientOption {
	return option.WithCredentialsFile(c.Path)
}

// FieldCredential authenticates with discrete service account fields taken
// from the environment, assembled into an in-memory key file.
type FieldCredential struct {
	ProjectID   string
	PrivateKey  string
	ClientEmail string
	ClientID    string
}

func (c FieldCredential) ClientOption() option.ClientOption {
	return option.WithCredentialsJSON(c.serviceAccountJSON())
}

// serviceAccountInfo mirrors the JSON layout of a service account key file.
type serviceAccountInfo struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

func (c FieldCredential) serviceAccountJSON() []byte {
	info := serviceAccountInfo{
		Type:      "service_account",
		ProjectID: c.ProjectID,
		// The key id is not exposed separately, so the client id stands in.
		PrivateKeyID: c.ClientID,
		// Keys pasted into env vars arrive with escaped newlines.
		PrivateKey:              strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		ClientEmail:             c.ClientEmail,
		ClientID:                c.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       "https://www.googleapis.com/robot/v1/metadata/x509/" + c.ClientEmail,
	}
	data, _ := json.Marshal(info)
	return data
}

// ResolveCredential picks the first viable credential strategy: a key file
// that exists on disk, then discrete service account fields. The client id
// is optional for the field strategy.
func ResolveCredential(cfg *config.Config) (Credential, error) {
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err == nil {
			return FileCredential{Path: cfg.CredentialsFile}, nil
		}
	}
	if cfg.ProjectID != "" && cfg.PrivateKey != "" && cfg.ClientEmail != "" {
		return FieldCredential{
			ProjectID:   cfg.ProjectID,
			PrivateKey:  cfg.PrivateKey,
			ClientEmail: cfg.ClientEmail,
			ClientID:    cfg.ClientID,
		}, nil
	}
	return nil, ErrCredentialsMissing
}
