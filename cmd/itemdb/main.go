// fringe-itemdb seeds and inspects the sqlite item database.
//
//	go run ./cmd/itemdb --db items.db seed
//	go run ./cmd/itemdb --db items.db dump
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"fringe-client/assets"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/itemdb/sqlite"
)

func main() {
	db := flag.String("db", os.Getenv("FRINGE_ITEMDB_PATH"), "path to the sqlite item database")
	flag.Parse()

	if err := run(context.Background(), *db, flag.Arg(0), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, path, cmd string, w io.Writer) error {
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch cmd {
	case "seed":
		items := assets.Items()
		if err := store.Save(ctx, items); err != nil {
			return err
		}
		fmt.Fprintf(w, "seeded %d items into %s\n", items.Len(), path)
		return nil
	case "dump":
		items, err := store.Load(ctx)
		if err != nil {
			return err
		}
		dump(w, items)
		return nil
	}
	return fmt.Errorf("unknown command %q (want seed or dump)", cmd)
}

func dump(w io.Writer, items *itemdb.Table) {
	for _, id := range items.IDs() {
		it, err := items.Get(id)
		if err != nil {
			continue
		}
		path, _ := it.SpritePath(itemdb.GenderUnspecified)
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.Name, path)
		for f := itemdb.Facing(0); f < itemdb.NumFacings; f++ {
			r := it.Rules[f]
			if r.HasOrdering() {
				fmt.Fprintf(w, "\tfacing %d: before %d after %d priority %d\n", f, r.DrawBefore, r.DrawAfter, r.Priority)
			}
			for _, target := range r.RemovalTargets() {
				repl := r.RemoveSprites[target]
				if len(repl) == 0 {
					fmt.Fprintf(w, "\tfacing %d: hide slot %d\n", f, target)
					continue
				}
				keys := make([]int, 0, len(repl))
				for k := range repl {
					keys = append(keys, int(k))
				}
				sort.Ints(keys)
				for _, k := range keys {
					rp := repl[itemdb.ItemID(k)]
					fmt.Fprintf(w, "\tfacing %d: slot %d item %d -> hide=%v item %d\n", f, target, k, rp.Hide, rp.Item)
				}
			}
		}
	}
}
