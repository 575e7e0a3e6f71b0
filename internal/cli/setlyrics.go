package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyricstag/internal/audiotag"
	"lyricstag/internal/config"
)

// NewSetLyricsCommand builds the setlyrics command.
func NewSetLyricsCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "setlyrics <musicFilePath> <lyrics>",
		Short: "Set lyrics to file",
		Long: `Write lyrics into an .mp3 (ID3v2 unsynchronised lyrics frame) or
.ogg (Vorbis comment LYRICS) file, replacing the previous lyrics.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			musicFilePath, lyrics := args[0], args[1]
			setter := audiotag.NewLyricsSetter(cfg.TagOptions(), logger)
			if err := setter.SetLyrics(musicFilePath, lyrics); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), musicFilePath, lyrics)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/lyricstag/config.yaml)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	return cmd
}
