package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lyricstag/internal/audiotag"
	"lyricstag/internal/config"
)

type globalFlags struct {
	configPath string
	logLevel   string
}

func (g *globalFlags) load(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

// NewMusicTagCommand builds the musictag command with its show and set
// subcommands.
func NewMusicTagCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "musictag",
		Short: "Inspect and edit tags of .mp3, .ogg and .flac files",
		Long: `musictag reads and writes the textual tags of audio files.

Keys are Vorbis-style names (TITLE, ARTIST, ALBUM, ALBUMARTIST, GENRE,
DATE, TRACKNUMBER, DISCNUMBER, COMPOSER, COMMENT, LYRICS) matched
case-insensitively. In .mp3 files any other key is stored as an ID3
user-defined text frame, e.g. PERFORMER:HARPSICHORD.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $HOME/.config/lyricstag/config.yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newShowCommand(g), newSetCommand(g))
	return root
}

func newShowCommand(g *globalFlags) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print every tag of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			store, err := audiotag.Open(args[0], cfg.TagOptions())
			if err != nil {
				return err
			}
			defer store.Close()

			var lines []tagLine
			for _, k := range store.Keys() {
				lines = append(lines, tagLine{key: k, values: store.Get(k)})
			}
			info := ""
			if props, err := audiotag.ReadProperties(args[0]); err != nil {
				logger.Debug().Err(err).Str("path", args[0]).Msg("no audio properties")
			} else {
				info = formatProperties(props)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTags(filepath.Base(args[0]), info, lines, width))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "truncate output lines to this many columns (0 disables)")
	return cmd
}

type editFlags struct {
	set    []string
	add    []string
	delete []string
	cover  string
}

func newSetCommand(g *globalFlags) *cobra.Command {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Edit tags of a file",
		Long: `Edit tags of a file. Deletions apply first, then --set, then --add.
Repeating --set for one key stores several values.

  musictag set song.mp3 --set ALBUM="White Album" --delete DATE \
      --set GENRE=Vocal --set GENRE=Classical \
      --set PERFORMER:HARPSICHORD="Ton Koopman"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			return runSet(args[0], f, cfg.TagOptions(), logger)
		},
	}
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "KEY=VALUE to replace a tag")
	cmd.Flags().StringArrayVar(&f.add, "add", nil, "KEY=VALUE to append to a tag")
	cmd.Flags().StringArrayVar(&f.delete, "delete", nil, "KEY to remove")
	cmd.Flags().StringVar(&f.cover, "cover", "", "image to embed as front cover (.mp3 and .flac)")
	return cmd
}

func runSet(path string, f *editFlags, opts audiotag.Options, logger zerolog.Logger) (err error) {
	sets, err := parseAssignments(f.set)
	if err != nil {
		return err
	}
	adds, err := parseAssignments(f.add)
	if err != nil {
		return err
	}
	if len(sets) == 0 && len(adds) == 0 && len(f.delete) == 0 && f.cover == "" {
		return errors.New("nothing to do: use --set, --add, --delete or --cover")
	}

	if len(sets) > 0 || len(adds) > 0 || len(f.delete) > 0 {
		if err := editTags(path, opts, f.delete, sets, adds); err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("set", len(sets)).Int("add", len(adds)).Int("delete", len(f.delete)).Msg("tags saved")
	}

	if f.cover != "" {
		if err := audiotag.SetCover(path, f.cover, opts); err != nil {
			return fmt.Errorf("cover: %w", err)
		}
		logger.Info().Str("path", path).Str("cover", f.cover).Msg("cover saved")
	}
	return nil
}

type assignment struct {
	key    string
	values []string
}

// parseAssignments groups KEY=VALUE pairs by key, keeping first-seen order.
func parseAssignments(raw []string) ([]assignment, error) {
	var out []assignment
	index := map[string]int{}
	for _, r := range raw {
		k, v, ok := strings.Cut(r, "=")
		k = strings.ToUpper(strings.TrimSpace(k))
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q, want KEY=VALUE", r)
		}
		if i, seen := index[k]; seen {
			out[i].values = append(out[i].values, v)
			continue
		}
		index[k] = len(out)
		out = append(out, assignment{key: k, values: []string{v}})
	}
	return out, nil
}

func editTags(path string, opts audiotag.Options, deletes []string, sets, adds []assignment) (err error) {
	store, err := audiotag.Open(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, k := range deletes {
		store.Delete(k)
	}
	for _, a := range sets {
		store.Set(a.key, a.values...)
	}
	for _, a := range adds {
		for _, v := range a.values {
			store.Add(a.key, v)
		}
	}
	return store.Save()
}
