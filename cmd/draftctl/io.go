package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/markup"
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/core/raw"
	"github.com/TheWidlarzGroup/draft-js/core/store"
	"github.com/TheWidlarzGroup/draft-js/internal/config"
)

const (
	formatJSON = "json"
	formatXML  = "xml"
)

// cmdContext is a variable so tests can attach request ids.
var cmdContext = context.Background

// detectFormat picks the document format from the file extension.
func detectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return formatXML
	}
	return formatJSON
}

// outputFormat validates a --to value, falling back to the input format.
func outputFormat(to, input string) (string, error) {
	switch strings.ToLower(to) {
	case "":
		return input, nil
	case formatJSON:
		return formatJSON, nil
	case formatXML:
		return formatXML, nil
	default:
		return "", drafterrors.NewUnsupported("output format", to)
	}
}

func readDocument(pool *model.Pool, path string) (*model.ContentState, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", drafterrors.NewIO("read", path, err)
	}
	format := detectFormat(path)
	var cs *model.ContentState
	if format == formatXML {
		cs, err = markup.Import(pool, data)
	} else {
		cs, err = raw.Unmarshal(pool, data)
	}
	if err != nil {
		return nil, "", drafterrors.Wrapf(err, "read %s", path)
	}
	return cs, format, nil
}

// checkSelection reports the first selection key that names no block of cs.
func checkSelection(cs *model.ContentState, sel model.SelectionState) error {
	for _, key := range []string{sel.AnchorKey, sel.FocusKey} {
		if _, ok := cs.BlockForKey(key); !ok {
			return drafterrors.NewNotFound("block", key)
		}
	}
	return nil
}

func encodeDocument(cs *model.ContentState, format string) ([]byte, error) {
	if format == formatXML {
		return markup.Export(cs)
	}
	data, err := raw.Marshal(cs)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeDocument writes cs to path, or to stdout when path is empty.
func writeDocument(cs *model.ContentState, path, format string) error {
	data, err := encodeDocument(cs, format)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return drafterrors.NewIO("write", path, err)
	}
	return nil
}

// withStore opens the configured store for the duration of fn.
func withStore(cfg *config.Config, pool *model.Pool, fn func(*store.Store) error) error {
	s, err := store.Open(cmdContext(), pool, cfg.StoreConfig())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
