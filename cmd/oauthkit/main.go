package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arest/oauthkit/auth"
	"github.com/arest/oauthkit/configx"
	"github.com/arest/oauthkit/logx"
	"github.com/arest/oauthkit/oauth1"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "oauthkit",
		Short:         "Inspect OAuth provider configuration and sign OAuth1 requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSignCmd(), newProvidersCmd())
	return root
}

func newSignCmd() *cobra.Command {
	var (
		httpMethod   string
		sigMethod    string
		consumerKey  string
		clientSecret string
		tokenSecret  string
		params       []string
		baseOnly     bool
	)

	cmd := &cobra.Command{
		Use:   "sign <url>",
		Short: "Compute an OAuth1 signature for a request",
		Long: `Compute an OAuth1 signature for a request.

The reserved oauth_* parameters are filled in with a fresh nonce and
the current timestamp; pass --param to add request parameters on top.
For RSA-SHA1 the client secret is the path to a PEM private key file
and the token secret is its passphrase, if any.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := oauth1.ParseSignatureMethod(sigMethod)
			if err != nil {
				return err
			}

			signParams := oauth1.BaseParams(consumerKey, method)
			for _, p := range params {
				key, value, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, want key=value", p)
				}
				signParams[key] = value
			}

			signature, err := oauth1.Sign(httpMethod, args[0], signParams,
				clientSecret, tokenSecret, method)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if baseOnly {
				for _, key := range []string{"oauth_consumer_key", "oauth_timestamp", "oauth_nonce"} {
					fmt.Fprintf(out, "%s=%s\n", key, signParams[key])
				}
			}
			fmt.Fprintln(out, signature)
			return nil
		},
	}

	cmd.Flags().StringVarP(&httpMethod, "request", "X", "GET", "HTTP method of the request being signed")
	cmd.Flags().StringVarP(&sigMethod, "method", "m", "HMAC-SHA1", "signature method (HMAC-SHA1, RSA-SHA1 or PLAINTEXT)")
	cmd.Flags().StringVarP(&consumerKey, "consumer-key", "k", "", "oauth_consumer_key value")
	cmd.Flags().StringVarP(&clientSecret, "client-secret", "s", "", "client secret, or key file path for RSA-SHA1")
	cmd.Flags().StringVarP(&tokenSecret, "token-secret", "t", "", "token secret, or key passphrase for RSA-SHA1")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "request parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&baseOnly, "show-oauth-params", false, "also print the generated oauth_* parameters")
	cobra.CheckErr(cmd.MarkFlagRequired("consumer-key"))

	return cmd
}

func newProvidersCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the providers configured for the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configx.NewBuilder().
				FromFile(configFile).
				FromEnv("OAUTHKIT").
				Build()
			if err != nil {
				return err
			}

			registry, connect, err := auth.RegistryFromConfig(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "connect mode: %v\n", connect)
			for _, name := range registry.Names() {
				path, err := registry.CheckPath(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", name, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "oauthkit.json", "path to the configuration file")

	return cmd
}
