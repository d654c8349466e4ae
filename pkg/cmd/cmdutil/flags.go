package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by every subcommand.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "", "config file")
	flags.String("dotenv", ".env.local", "the dotenv file to load the api credentials from")
	flags.String("log-file", "", "also write json logs to this file")
	flags.String("product", "", "product code, e.g. BTCJPY-PERP, the first configured product code by default")
}
