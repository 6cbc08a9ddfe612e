package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Popolzen/url2"
	"github.com/spf13/cobra"
)

var errKeyNotFound = errors.New("key not found")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "url2",
		Short: "Правка query-строки URL как карты с уникальными ключами",
		Long: `url2 разбирает URL и работает с его query-строкой как с картой:
повторяющиеся ключи схлопываются, побеждает последнее значение.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		rewriteCmd(),
		getCmd(),
	)

	return rootCmd
}

func rewriteCmd() *cobra.Command {
	var (
		set    map[string]string
		remove []string
	)

	cmd := &cobra.Command{
		Use:   "rewrite <url>",
		Short: "Выставить и удалить ключи query-строки",
		Example: `  url2 rewrite "https://example.com/?a=1&a=2" --set b=3 --remove a
  url2 rewrite none: --set utm_source=mail,utm_medium=email`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url2.TryParse(args[0])
			if err != nil {
				return err
			}

			err = u.WithQueryUnique(func(q *url2.QueryUnique) error {
				for _, key := range remove {
					q.Remove(key)
				}
				for key, value := range set {
					q.SetPair(key, value)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&set, "set", "s", nil, "key=value to set (repeatable)")
	cmd.Flags().StringSliceVarP(&remove, "remove", "r", nil, "key to remove (repeatable)")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <url> <key>",
		Short: "Напечатать значение ключа query-строки",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url2.TryParse(args[0])
			if err != nil {
				return err
			}

			value, ok := u.QueryUniqueGet(args[1])
			if !ok {
				return fmt.Errorf("%w: %s", errKeyNotFound, args[1])
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
