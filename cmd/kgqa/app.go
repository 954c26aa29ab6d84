package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/kgqa/config"
	"github.com/c360studio/kgqa/linking"
	"github.com/c360studio/kgqa/query"
	"github.com/c360studio/kgqa/slotfill"
	"github.com/c360studio/kgqa/template"
	"github.com/c360studio/kgqa/tokenizer"
)

// appContext carries the loaded configuration and logger shared across
// subcommands.
type appContext struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// inputText returns the joined arguments, or the whole of stdin when
// no arguments were given.
func inputText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *appContext) newTokenizer() (*tokenizer.Tokenizer, error) {
	switch a.cfg.Graph.Name {
	case "wikidata":
		return tokenizer.NewWikidata(), nil
	case "dbpedia":
		return tokenizer.NewDBpedia(), nil
	}
	return nil, fmt.Errorf("unsupported graph: %s", a.cfg.Graph.Name)
}

func (a *appContext) newQuery(text string) query.Query {
	if a.cfg.Graph.Name == "dbpedia" {
		return query.NewDBpedia(text)
	}
	return query.NewWikidata(text)
}

func (a *appContext) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewLoader(a.logger).EnsureUserConfig(); err != nil {
				return fmt.Errorf("write user config: %w", err)
			}
			return nil
		},
	}
}

func (a *appContext) tokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [query]",
		Short: "Encode a SPARQL query into its token sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args)
			if err != nil {
				return err
			}
			tok, err := a.newTokenizer()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Encode(a.newQuery(text)))
			return nil
		},
	}
}

func (a *appContext) detokenizeCmd() *cobra.Command {
	var (
		decompress  bool
		addPrefixes bool
	)
	cmd := &cobra.Command{
		Use:   "detokenize [tokens]",
		Short: "Decode a token sequence back into a SPARQL query",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args)
			if err != nil {
				return err
			}
			tok, err := a.newTokenizer()
			if err != nil {
				return err
			}
			q := tok.Decode(text)
			fmt.Fprintln(cmd.OutOrStdout(), q.Text(!decompress, addPrefixes))
			return nil
		},
	}
	cmd.Flags().BoolVar(&decompress, "decompress", false, "Expand resources to full URIs")
	cmd.Flags().BoolVar(&addPrefixes, "prefixes", false, "Prepend the PREFIX header")
	return cmd
}

func (a *appContext) templateCmd() *cobra.Command {
	var base bool
	cmd := &cobra.Command{
		Use:   "template [query]",
		Short: "Derive the slot template of a SPARQL query",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args)
			if err != nil {
				return err
			}
			engine := template.New(text)
			var derived string
			if base {
				derived, err = engine.BaseTemplate()
			} else {
				derived, err = engine.Template()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), derived)
			return nil
		},
	}
	cmd.Flags().BoolVar(&base, "base", false, "Derive the coarse structural form")
	return cmd
}

func (a *appContext) slotsCmd() *cobra.Command {
	var ignoreType bool
	cmd := &cobra.Command{
		Use:   "slots [query]",
		Short: "Extract the resource-to-placeholder slot map of a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args)
			if err != nil {
				return err
			}
			slots, err := template.New(text).Slots(ignoreType)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), slots)
		},
	}
	cmd.Flags().BoolVar(&ignoreType, "ignore-type", false, "Skip the dedicated type slot")
	return cmd
}

func (a *appContext) fillCmd() *cobra.Command {
	var (
		hintsPath    string
		mentionsPath string
	)
	cmd := &cobra.Command{
		Use:   "fill [template]",
		Short: "Fill the placeholders of a template with linked entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(args)
			if err != nil {
				return err
			}
			var hints []slotfill.Hint
			if hintsPath != "" {
				if err := readJSON(hintsPath, &hints); err != nil {
					return err
				}
			}
			var mentions []linking.Mention
			if mentionsPath != "" {
				if err := readJSON(mentionsPath, &mentions); err != nil {
					return err
				}
			}
			filler, err := slotfill.New(a.cfg.SlotFill.Method)
			if err != nil {
				return err
			}
			filled, audit := filler.Fill(text, hints, mentions)
			a.logger.Debug("template filled",
				"method", a.cfg.SlotFill.Method,
				"substitutions", len(audit))
			fmt.Fprintln(cmd.OutOrStdout(), filled)
			return nil
		},
	}
	cmd.Flags().StringVar(&hintsPath, "hints", "", "JSON file with slot hints")
	cmd.Flags().StringVar(&mentionsPath, "mentions", "", "JSON file with linked mentions")
	return cmd
}

func (a *appContext) mergeCmd() *cobra.Command {
	var (
		bundlePath string
		uid        string
		expected   int
	)
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge entity linking annotations into a ranked mention list",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.loadBundle(bundlePath, uid)
			if err != nil {
				return err
			}
			merger, err := a.newMerger()
			if err != nil {
				return err
			}
			mentions, err := merger.Merge(bundle, expected)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), mentions)
		},
	}
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "JSON file with one annotation bundle")
	cmd.Flags().StringVar(&uid, "uid", "", "Question uid to look up in the annotation cache")
	cmd.Flags().IntVar(&expected, "expected", 0, "Expected number of entities (0 = config threshold)")
	return cmd
}

func (a *appContext) loadBundle(bundlePath, uid string) (linking.Bundle, error) {
	if bundlePath != "" {
		var bundle linking.Bundle
		if err := readJSON(bundlePath, &bundle); err != nil {
			return linking.Bundle{}, err
		}
		return bundle, nil
	}
	if uid == "" {
		return linking.Bundle{}, fmt.Errorf("either --bundle or --uid is required")
	}
	if a.cfg.Linking.CacheDir == "" {
		return linking.Bundle{}, fmt.Errorf("linking.cache_dir is not configured")
	}
	cache := linking.NewCache(a.logger)
	if err := cache.LoadGlob(a.cfg.Linking.CacheDir, a.cfg.Linking.CachePattern); err != nil {
		return linking.Bundle{}, err
	}
	bundle, ok := cache.Bundle(uid)
	if !ok {
		return linking.Bundle{}, fmt.Errorf("uid %q not found in annotation cache", uid)
	}
	return bundle, nil
}

func (a *appContext) newMerger() (linking.Merger, error) {
	mergeCfg := linking.Config{
		Priority:        a.cfg.Linking.Priority,
		Threshold:       a.cfg.Linking.Threshold,
		FilterStopwords: a.cfg.Linking.FilterStopwords,
		Tiebreak:        a.cfg.Linking.Tiebreak,
	}
	switch a.cfg.Linking.Policy {
	case "keepall":
		return linking.KeepAll{}, nil
	case "priority":
		return linking.NewPriority(mergeCfg), nil
	case "voting":
		return linking.NewVoting(mergeCfg), nil
	}
	return nil, fmt.Errorf("unsupported linking policy: %s", a.cfg.Linking.Policy)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
