// Command draftctl edits, converts and stores rich text documents.
// Documents are read and written as raw JSON or XML markup.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/core/raw"
	"github.com/TheWidlarzGroup/draft-js/core/sqlite"
	"github.com/TheWidlarzGroup/draft-js/core/store"
	"github.com/TheWidlarzGroup/draft-js/core/transaction"
	"github.com/TheWidlarzGroup/draft-js/internal/config"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

const version = "0.1.0"

// stdout receives command output. Logs go to stderr.
var stdout io.Writer = os.Stdout

// CLI defines the command-line interface for draftctl.
var CLI struct {
	// Global flags override DRAFT_* environment settings.
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
	StorePath string `name:"store-path" short:"s" help:"Document store database" type:"path"`

	ApplyEntity ApplyEntityCmd `cmd:"" help:"Apply an entity to a selection"`
	RemoveEdges RemoveEdgesCmd `cmd:"" help:"Remove immutable and segmented entities cut by a selection"`
	Style       StyleCmd       `cmd:"" help:"Apply or remove an inline style over a selection"`
	Convert     ConvertCmd     `cmd:"" help:"Convert a document between raw JSON and XML"`
	Fingerprint FingerprintCmd `cmd:"" help:"Print the BLAKE3 content fingerprint of a document"`
	Store       StoreGroup     `cmd:"" help:"Revisioned document store"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// StoreGroup contains document store operations.
type StoreGroup struct {
	Save    StoreSaveCmd    `cmd:"" help:"Save a document as a new revision"`
	Load    StoreLoadCmd    `cmd:"" help:"Load a document revision"`
	History StoreHistoryCmd `cmd:"" help:"List the revisions of a document"`
	List    StoreListCmd    `cmd:"" help:"List stored documents"`
	Delete  StoreDeleteCmd  `cmd:"" help:"Delete a document and its revisions"`
}

// DocumentOutput holds the output flags shared by editing commands.
type DocumentOutput struct {
	Out string `name:"out" short:"o" help:"Output file (default stdout)" type:"path"`
	To  string `name:"to" help:"Output format (json, xml; default: input format)"`
}

// ApplyEntityCmd applies an entity key over a selection.
type ApplyEntityCmd struct {
	Input      string `arg:"" help:"Input document" type:"existingfile"`
	Selection  string `name:"selection" short:"S" required:"" help:"Selection, key:offset..key:offset"`
	Entity     string `name:"entity" short:"e" help:"Entity key to apply (empty clears)"`
	Layer      int    `name:"layer" short:"l" default:"0" help:"Entity layer (0 or 1 for the first, 2 for the second)"`
	Type       string `name:"type" help:"Register the entity with this type"`
	Mutability string `name:"mutability" default:"MUTABLE" help:"Mutability of a registered entity"`
	DocumentOutput `embed:""`
}

// Run executes the apply-entity command.
func (c *ApplyEntityCmd) Run(cfg *config.Config) error {
	layer := model.EntityLayer(c.Layer)
	if !layer.Valid() {
		return &drafterrors.ValidationError{Field: "layer", Message: fmt.Sprintf("invalid entity layer %d", c.Layer)}
	}
	sel, err := model.ParseSelection(c.Selection)
	if err != nil {
		return err
	}
	pool := model.NewPool()
	cs, format, err := readDocument(pool, c.Input)
	if err != nil {
		return err
	}
	if err := checkSelection(cs, sel); err != nil {
		return err
	}

	if c.Type != "" {
		if c.Entity == "" {
			return drafterrors.NewValidation("entity", "an entity key is required with --type")
		}
		mutability, err := model.ParseMutability(c.Mutability)
		if err != nil {
			return err
		}
		entities, ok := cs.Entities().(*model.EntityMap)
		if !ok {
			return drafterrors.NewUnsupported("entity registration", "document has a read-only entity registry")
		}
		cs = cs.WithEntities(entities.With(c.Entity, &model.EntityInstance{
			Type:       c.Type,
			Mutability: mutability,
			Layer:      layer,
		}))
	}

	tx := transaction.NewTransactor(pool, transaction.DefaultConfig())
	cs = tx.ApplyEntity(cs, sel, c.Entity, layer)
	to, err := outputFormat(c.To, format)
	if err != nil {
		return err
	}
	return writeDocument(cs, c.Out, to)
}

// RemoveEdgesCmd removes entities split by the edges of a selection.
type RemoveEdgesCmd struct {
	Input     string `arg:"" help:"Input document" type:"existingfile"`
	Selection string `name:"selection" short:"S" required:"" help:"Selection, key:offset or key:offset..key:offset"`
	DocumentOutput `embed:""`
}

// Run executes the remove-edges command.
func (c *RemoveEdgesCmd) Run(cfg *config.Config) error {
	sel, err := model.ParseSelection(c.Selection)
	if err != nil {
		return err
	}
	pool := model.NewPool()
	cs, format, err := readDocument(pool, c.Input)
	if err != nil {
		return err
	}
	if err := checkSelection(cs, sel); err != nil {
		return err
	}
	tx := transaction.NewTransactor(pool, transaction.DefaultConfig())
	cs = tx.RemoveEntitiesAtEdges(cs, sel)
	to, err := outputFormat(c.To, format)
	if err != nil {
		return err
	}
	return writeDocument(cs, c.Out, to)
}

// StyleCmd toggles an inline style over a selection.
type StyleCmd struct {
	Input     string `arg:"" help:"Input document" type:"existingfile"`
	Style     string `arg:"" help:"Inline style name (e.g., BOLD)"`
	Selection string `name:"selection" short:"S" required:"" help:"Selection, key:offset..key:offset"`
	Remove    bool   `name:"remove" short:"r" help:"Remove the style instead of applying it"`
	DocumentOutput `embed:""`
}

// Run executes the style command.
func (c *StyleCmd) Run(cfg *config.Config) error {
	if c.Style == "" {
		return drafterrors.NewValidation("style", "must not be empty")
	}
	sel, err := model.ParseSelection(c.Selection)
	if err != nil {
		return err
	}
	pool := model.NewPool()
	cs, format, err := readDocument(pool, c.Input)
	if err != nil {
		return err
	}
	if err := checkSelection(cs, sel); err != nil {
		return err
	}
	tx := transaction.NewTransactor(pool, transaction.DefaultConfig())
	if c.Remove {
		cs = tx.RemoveInlineStyle(cs, sel, c.Style)
	} else {
		cs = tx.ApplyInlineStyle(cs, sel, c.Style)
	}
	to, err := outputFormat(c.To, format)
	if err != nil {
		return err
	}
	return writeDocument(cs, c.Out, to)
}

// ConvertCmd converts between document formats.
type ConvertCmd struct {
	Input string `arg:"" help:"Input document" type:"existingfile"`
	DocumentOutput `embed:""`
}

// Run executes the convert command.
func (c *ConvertCmd) Run(cfg *config.Config) error {
	cs, format, err := readDocument(model.NewPool(), c.Input)
	if err != nil {
		return err
	}
	to, err := outputFormat(c.To, format)
	if err != nil {
		return err
	}
	if c.To == "" {
		// Without --to, convert to the other format.
		to = formatJSON
		if format == formatJSON {
			to = formatXML
		}
	}
	return writeDocument(cs, c.Out, to)
}

// StoreSaveCmd saves a document into the store.
type StoreSaveCmd struct {
	Input string `arg:"" help:"Input document" type:"existingfile"`
	ID    string `arg:"" help:"Document id"`
}

// Run executes the store save command.
func (c *StoreSaveCmd) Run(cfg *config.Config) error {
	pool := model.NewPool()
	cs, _, err := readDocument(pool, c.Input)
	if err != nil {
		return err
	}
	return withStore(cfg, pool, func(s *store.Store) error {
		rev, created, err := s.Save(cmdContext(), c.ID, cs)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(stdout, "saved %s revision %d (%s)\n", c.ID, rev.Number, rev.ID)
		} else {
			fmt.Fprintf(stdout, "unchanged %s revision %d (%s)\n", c.ID, rev.Number, rev.ID)
		}
		return nil
	})
}

// StoreLoadCmd writes a stored revision.
type StoreLoadCmd struct {
	ID       string `arg:"" help:"Document id"`
	Revision string `name:"revision" help:"Revision id (default latest)"`
	Number   int    `name:"number" short:"n" help:"Revision number (default latest)"`
	Out      string `name:"out" short:"o" help:"Output file (default stdout)" type:"path"`
	To       string `name:"to" default:"json" help:"Output format (json, xml)"`
}

// Run executes the store load command.
func (c *StoreLoadCmd) Run(cfg *config.Config) error {
	pool := model.NewPool()
	return withStore(cfg, pool, func(s *store.Store) error {
		var (
			cs  *model.ContentState
			err error
		)
		ctx := cmdContext()
		switch {
		case c.Revision != "":
			cs, _, err = s.LoadRevision(ctx, c.Revision)
		case c.Number > 0:
			cs, _, err = s.LoadNumber(ctx, c.ID, c.Number)
		default:
			cs, _, err = s.Load(ctx, c.ID)
		}
		if err != nil {
			return err
		}
		to, err := outputFormat(c.To, formatJSON)
		if err != nil {
			return err
		}
		return writeDocument(cs, c.Out, to)
	})
}

// StoreHistoryCmd lists revisions.
type StoreHistoryCmd struct {
	ID   string `arg:"" help:"Document id"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

// Run executes the store history command.
func (c *StoreHistoryCmd) Run(cfg *config.Config) error {
	return withStore(cfg, model.NewPool(), func(s *store.Store) error {
		revs, err := s.History(cmdContext(), c.ID)
		if err != nil {
			return err
		}
		if c.JSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(revs)
		}
		w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tID\tHASH\tSIZE\tSTORED\tCREATED")
		for _, r := range revs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
				r.Number, r.ID, r.Hash[:12], r.Size, r.StoredSize, r.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	})
}

// StoreListCmd lists stored documents.
type StoreListCmd struct{}

// Run executes the store list command.
func (c *StoreListCmd) Run(cfg *config.Config) error {
	return withStore(cfg, model.NewPool(), func(s *store.Store) error {
		ids, err := s.Documents(cmdContext())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
		return nil
	})
}

// StoreDeleteCmd deletes a document.
type StoreDeleteCmd struct {
	ID string `arg:"" help:"Document id"`
}

// Run executes the store delete command.
func (c *StoreDeleteCmd) Run(cfg *config.Config) error {
	return withStore(cfg, model.NewPool(), func(s *store.Store) error {
		if err := s.Delete(cmdContext(), c.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted %s\n", c.ID)
		return nil
	})
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "draftctl version %s (sqlite %s, %s)\n", version, info.DriverType, info.Package)
	return nil
}

// FingerprintCmd prints the content fingerprint of a document.
type FingerprintCmd struct {
	Input string `arg:"" help:"Input document" type:"existingfile"`
}

// Run executes the fingerprint command.
func (c *FingerprintCmd) Run(cfg *config.Config) error {
	cs, _, err := readDocument(model.NewPool(), c.Input)
	if err != nil {
		return err
	}
	fp, err := raw.Fingerprint(cs)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, fp)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "draftctl: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("draftctl"),
		kong.Description("Rich text document editing, conversion and storage"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx.FatalIfErrorf(applyFlags(&cfg))
	cfg.InitLogging()
	logging.Debug("starting", "command", ctx.Command(), "store", cfg.StorePath)

	err = ctx.Run(&cfg)
	ctx.FatalIfErrorf(err)
}

// applyFlags overrides environment settings with global flags.
func applyFlags(cfg *config.Config) error {
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.LogFormat = CLI.LogFormat
	}
	if CLI.StorePath != "" {
		cfg.StorePath = CLI.StorePath
	}
	return cfg.Validate()
}
