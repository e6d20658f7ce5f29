package main

import (
	"errors"
	"fmt"
	"strings"

	"imgproxyurl/internal/adapters/cache"
	"imgproxyurl/internal/adapters/config"
	"imgproxyurl/internal/adapters/file"
	"imgproxyurl/internal/adapters/handler"
	"imgproxyurl/internal/core/codec"
	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/option"
	"imgproxyurl/internal/core/port"
	"imgproxyurl/internal/core/service"
	"imgproxyurl/internal/core/signer"
	"imgproxyurl/internal/core/source"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var errBatchFailed = errors.New("some batch lines failed")

// app carries the loaded configuration between the root command and its
// subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

// persistent flags and the config keys they override
var flagKeys = map[string]string{
	"url":            "imgproxy.url",
	"key":            "imgproxy.key",
	"salt":           "imgproxy.salt",
	"encryption-key": "imgproxy.encryption_key",
	"signature-size": "imgproxy.signature_size",
	"mode":           "source.mode",
	"cache-size":     "cache.size",
	"log-level":      "log.level",
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	a := &app{v: v}
	var configPath string

	root := &cobra.Command{
		Use:           "imgproxy-url",
		Short:         "Build and sign imgproxy URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				key, ok := flagKeys[f.Name]
				if !ok || err != nil {
					return
				}
				err = v.BindPFlag(key, f)
			})
			if err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			a.cfg, err = config.Load(v, configPath)
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(a.cfg.Level())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./config.toml)")
	flags.String("url", "", "base URL of the imgproxy deployment")
	flags.String("key", "", "hex encoded signing key")
	flags.String("salt", "", "hex encoded signing salt")
	flags.String("encryption-key", "", "hex encoded AES key for encrypted sources")
	flags.Int("signature-size", config.DefaultSignatureSize, "signature length in bytes, 1 to 32")
	flags.String("mode", string(domain.Safe), "source mode: safe, plain or encrypted")
	flags.Int("cache-size", config.DefaultCacheSize, "signature cache entries for batch runs, 0 disables")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(a.buildCommand(), a.batchCommand(), a.signCommand(), a.verifyCommand(), decodeCommand())

	return root
}

func (a *app) newSigner() (*signer.HMAC, error) {
	m, err := a.cfg.Material()
	if err != nil {
		return nil, err
	}

	return signer.New(m, signer.WithSize(a.cfg.SignatureSize))
}

func (a *app) newBuilder(cached bool) (*service.Builder, error) {
	hmac, err := a.newSigner()
	if err != nil {
		return nil, err
	}

	var s port.Signer = hmac
	if cached && a.cfg.CacheSize > 0 {
		s, err = cache.NewSigner(hmac, a.cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	k, err := a.cfg.Encryption()
	if err != nil {
		return nil, err
	}

	return service.NewBuilder(s, source.NewEncoder(source.WithEncryptionKey(k))), nil
}

func (a *app) mode() (domain.Mode, error) {
	return a.cfg.Mode()
}

func (a *app) buildCommand() *cobra.Command {
	var (
		directives []string
		extension  string
		pathOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "build SOURCE",
		Short: "Print the signed URL for a single source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.mode()
			if err != nil {
				return err
			}

			set, err := option.ParseSet(directives...)
			if err != nil {
				return err
			}

			b, err := a.newBuilder(false)
			if err != nil {
				return err
			}

			ref := domain.Reference{URL: args[0], Mode: mode}
			if mode == domain.Plain && source.NeedsEncoding(ref.URL) {
				log.Debug().Str("source", ref.URL).Msg("source will be percent-encoded")
			}

			var out string
			if pathOnly {
				p, err := b.Build(ref, set, extension)
				if err != nil {
					return err
				}
				out = p.String()
			} else {
				c, err := service.NewClient(a.cfg.URL, b)
				if err != nil {
					return err
				}
				if out, err = c.URL(ref, set, extension); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&directives, "option", "o", nil, "processing directive, e.g. rs:fit:300:200 (repeatable)")
	cmd.Flags().StringVar(&extension, "ext", "", "output format extension")
	cmd.Flags().BoolVar(&pathOnly, "path-only", false, "print only the signed path")

	return cmd
}

func (a *app) batchCommand() *cobra.Command {
	var input, output, extension string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Build URLs for lines of \"SOURCE [directive...]\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := a.mode()
			if err != nil {
				return err
			}

			b, err := a.newBuilder(true)
			if err != nil {
				return err
			}

			c, err := service.NewClient(a.cfg.URL, b)
			if err != nil {
				return err
			}

			r, err := file.Open(input)
			if err != nil {
				return err
			}
			defer file.Close(r, input)

			w, err := file.Create(output)
			if err != nil {
				return err
			}
			defer file.Close(w, output)

			res, err := handler.NewBatch(c, mode, extension).Handle(cmd.Context(), r, w)
			if err != nil {
				return err
			}

			if res.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", errBatchFailed, res.Failed, res.Failed+res.Built)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", file.Stdio, "file to read lines from")
	cmd.Flags().StringVarP(&output, "output", "O", file.Stdio, "file to write URLs to")
	cmd.Flags().StringVar(&extension, "ext", "", "output format extension for every line")

	return cmd
}

func (a *app) signCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign PATH",
		Short: "Print the signature for an unsigned path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSigner()
			if err != nil {
				return err
			}

			if !s.Enabled() {
				log.Warn().Msg("no key and salt configured, signing is disabled")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Sign(args[0]))
			return err
		},
	}
}

func (a *app) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify SIGNED_PATH",
		Short: "Check the signature of a signed path or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSigner()
			if err != nil {
				return err
			}

			p := args[0]
			if base := strings.TrimRight(a.cfg.URL, "/"); base != "" {
				p = strings.TrimPrefix(p, base)
			}

			sig, unsigned, ok := domain.SignedPath(p).Split()
			if !ok {
				return fmt.Errorf("%w: %q is not a signed path", domain.ErrSignatureMismatch, p)
			}

			if err := s.Verify(unsigned, sig); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
}

func decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode SEGMENT",
		Short: "Decode a URL-safe base64 segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, _, _ := strings.Cut(args[0], ".")

			b, err := codec.Decode(seg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}
