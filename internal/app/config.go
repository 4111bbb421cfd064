package app

import (
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/price-basket/internal/console"
	"github.com/xenking/price-basket/internal/domain/item"
)

// Config holds the application configuration, loadable from flags,
// environment variables (BASKET_ prefix) or YAML config files.
type Config struct {
	Format string   `default:"text" usage:"Output format: text or json" flag:"format"`
	Offers []string `default:"apples,soup" usage:"Active offers, named by the item that triggers them" flag:"offers"`
	Prompt bool     `default:"true" usage:"Print instructions before reading each line (text format only)" flag:"prompt"`
}

// LoadConfig loads configuration from args, the environment and YAML config
// files. Positional arguments left after flag parsing are returned as the
// basket to price in one-shot mode.
func LoadConfig(args []string) (*Config, []string, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BASKET",
		Args:      args,
		Files:     []string{"price-basket.yaml", "/etc/price-basket/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	if err := cfg.validate(); err != nil {
		return nil, nil, errors.Wrap(err, "validate config")
	}
	return &cfg, loader.Flags().Args(), nil
}

func (c *Config) validate() error {
	switch console.Format(c.Format) {
	case console.FormatText, console.FormatJSON:
	default:
		return errors.Errorf("unsupported format %q", c.Format)
	}
	if _, err := c.offerTriggers(); err != nil {
		return err
	}
	return nil
}

// offerTriggers parses the configured offer names into items.
func (c *Config) offerTriggers() ([]item.Name, error) {
	triggers := make([]item.Name, 0, len(c.Offers))
	for _, name := range c.Offers {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		it, err := item.Parse(name)
		if err != nil {
			return nil, errors.Wrap(err, "offers")
		}
		triggers = append(triggers, it)
	}
	return triggers, nil
}
