// Package payment holds the static payment-gateway configuration: key IDs
// per mode, currency and store display strings. There is no behaviour here
// beyond selecting the active key by mode; the gateway itself runs on the
// storefront client.
package payment

import "github.com/go-faster/errors"

// Mode selects which gateway credentials are active.
type Mode string

const (
	ModeTest Mode = "test"
	ModeLive Mode = "live"
)

// Config is the flat gateway configuration record. Loaded from the
// application config; defaults match the test-mode storefront setup.
type Config struct {
	Mode         Mode   `default:"test" usage:"payment gateway mode: test or live"`
	TestKeyID    string `default:"rzp_test_1DP5mmOlF5G5ag" usage:"gateway key id for test mode" flag:"test-key-id"`
	LiveKeyID    string `default:"" usage:"gateway key id for live mode" flag:"live-key-id"`
	Currency     string `default:"INR" usage:"checkout currency code"`
	USDToINRRate int    `default:"83" usage:"USD to INR conversion rate" flag:"usd-inr-rate"`

	StoreName        string `default:"Froakie TCG Store" usage:"store display name" flag:"store-name"`
	StoreDescription string `default:"Pokemon Trading Cards Purchase" usage:"checkout description" flag:"store-description"`
	StoreLogo        string `default:"" usage:"store logo URL" flag:"store-logo"`
	ThemeColor       string `default:"#e74c3c" usage:"checkout theme color" flag:"theme-color"`
}

// Validate checks the mode and that a key id exists for it.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeTest, ModeLive:
	default:
		return errors.Errorf("unknown payment mode %q", c.Mode)
	}
	if c.ActiveKeyID() == "" {
		return errors.Errorf("no gateway key id configured for %s mode", c.Mode)
	}
	return nil
}

// ActiveKeyID returns the key id for the configured mode.
func (c Config) ActiveKeyID() string {
	if c.Mode == ModeLive {
		return c.LiveKeyID
	}
	return c.TestKeyID
}

// Public is the projection of the gateway configuration safe to hand to the
// storefront client. Key secrets never appear here; only key IDs do.
type Public struct {
	KeyID            string `json:"key_id"`
	Mode             Mode   `json:"mode"`
	Currency         string `json:"currency"`
	USDToINRRate     int    `json:"usd_to_inr_rate"`
	StoreName        string `json:"store_name"`
	StoreDescription string `json:"store_description"`
	StoreLogo        string `json:"store_logo"`
	ThemeColor       string `json:"theme_color"`
}

// Public returns the client-visible projection of the configuration.
func (c Config) Public() Public {
	return Public{
		KeyID:            c.ActiveKeyID(),
		Mode:             c.Mode,
		Currency:         c.Currency,
		USDToINRRate:     c.USDToINRRate,
		StoreName:        c.StoreName,
		StoreDescription: c.StoreDescription,
		StoreLogo:        c.StoreLogo,
		ThemeColor:       c.ThemeColor,
	}
}
