package http

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/milan604/apinet/pkg/config"
	"github.com/milan604/apinet/pkg/logger"
	"github.com/milan604/apinet/pkg/validator"
)

// Config keys read by LoadClientConfig.
const (
	KeyTimeout         = "http.timeout"
	KeyTransport       = "http.transport"
	KeyDebug           = "http.debug"
	KeyCurl            = "http.curl"
	KeyRequestIDHeader = "http.request_id_header"
	KeyStrictJSON      = "http.strict_json"
)

// Transport names accepted under KeyTransport.
const (
	TransportNet   = "net"
	TransportResty = "resty"
)

// ClientConfig is the validated, typed view of the http.* keys.
type ClientConfig struct {
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Transport       string        `mapstructure:"transport" validate:"oneof=net resty"`
	Debug           bool          `mapstructure:"debug"`
	Curl            bool          `mapstructure:"curl"`
	RequestIDHeader string        `mapstructure:"request_id_header" validate:"omitempty,printascii,excludesall=:"`
	StrictJSON      bool          `mapstructure:"strict_json"`
}

// Defaults returns the default values for every key, suitable for config.WithDefaults.
func Defaults() map[string]any {
	return map[string]any{
		KeyTimeout:         DefaultTimeout,
		KeyTransport:       TransportNet,
		KeyDebug:           false,
		KeyCurl:            false,
		KeyRequestIDHeader: "",
		KeyStrictJSON:      false,
	}
}

// LoadClientConfig reads and validates the http.* keys from cfg.
func LoadClientConfig(cfg *config.Config) (ClientConfig, error) {
	cc := ClientConfig{
		Timeout:         cfg.GetDurationD(KeyTimeout, DefaultTimeout),
		Transport:       cfg.GetStringD(KeyTransport, TransportNet),
		Debug:           cfg.GetBoolD(KeyDebug, false),
		Curl:            cfg.GetBoolD(KeyCurl, false),
		RequestIDHeader: cfg.GetString(KeyRequestIDHeader),
		StrictJSON:      cfg.GetBoolD(KeyStrictJSON, false),
	}
	if err := validator.New().Struct(cc); err != nil {
		return ClientConfig{}, fmt.Errorf("http client configuration: %w", err)
	}
	return cc, nil
}

// Options translates the config into client options.
func (cc ClientConfig) Options() []ClientOption {
	opts := []ClientOption{
		WithTimeout(cc.Timeout),
		WithDecoder(JSONDecoder{DisallowUnknownFields: cc.StrictJSON}),
	}
	if cc.Transport == TransportResty {
		opts = append(opts, WithTransport(NewRestyTransport(resty.New())))
	}
	if cc.Debug {
		var traceOpts []LogTracerOption
		if cc.Curl {
			traceOpts = append(traceOpts, WithCurl())
		}
		opts = append(opts, WithDebug(traceOpts...))
	}
	if cc.RequestIDHeader != "" {
		opts = append(opts, WithRequestHook(RequestIDHook(cc.RequestIDHeader)))
	}
	return opts
}

// NewClientFromConfig creates a client configured from cfg.
//
// Recognised keys:
//   - http.timeout: request timeout (default 30s)
//   - http.transport: "net" or "resty"
//   - http.debug / http.curl: trace exchanges through log
//   - http.request_id_header: forward a request id under this header
//   - http.strict_json: reject unknown fields when decoding
func NewClientFromConfig(log logger.LogManager, cfg *config.Config, extra ...ClientOption) (*Client, error) {
	cc, err := LoadClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts := append([]ClientOption{WithLogger(log)}, cc.Options()...)
	return NewClient(append(opts, extra...)...), nil
}
