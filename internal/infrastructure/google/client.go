package google

import (
	"context"
	"fmt"

	"patient-sheets/config"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ClientFactory builds Sheets and Drive clients bound to a caller's bearer
// credential. The credential is forwarded as-is and never refreshed.
type ClientFactory struct {
	cfg config.GoogleConfig
}

func NewClientFactory(cfg config.GoogleConfig) *ClientFactory {
	return &ClientFactory{cfg: cfg}
}

func (f *ClientFactory) Sheets(ctx context.Context, accessToken string) (*sheets.Service, error) {
	srv, err := sheets.NewService(ctx, f.options(accessToken, f.cfg.SheetsEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return srv, nil
}

func (f *ClientFactory) Drive(ctx context.Context, accessToken string) (*drive.Service, error) {
	srv, err := drive.NewService(ctx, f.options(accessToken, f.cfg.DriveEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return srv, nil
}

func (f *ClientFactory) options(accessToken, endpoint string) []option.ClientOption {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	opts := []option.ClientOption{option.WithTokenSource(tokenSource)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
