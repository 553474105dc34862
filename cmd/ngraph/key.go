package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
)

func (c maincmd) key(ctx context.Context, fs *flag.FlagSet, args []string) error {
	format := formatFlag(fs)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	filenames := fs.Args()
	keys, err := addFiles(ctx, c.g, *format, filenames)
	if err != nil {
		return err
	}

	for i, k := range keys {
		if len(keys) == 1 {
			fmt.Println(k)
		} else {
			fmt.Printf("%s %s\n", k, filenames[i])
		}
	}
	return nil
}
