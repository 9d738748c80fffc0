// Command bpmapctl is a small inspection/demo CLI over a bpmap database,
// generalized from the teacher's ad hoc main.go (which opened a fixed
// db_files/dbtest_2 path, inserted nine random keys, and pretty-printed
// the tree) into a flag-driven tool covering every front-end verb.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"bpmap"
)

func main() {
	path := flag.String("db", "", "path to the database file (required)")
	cacheCapacity := flag.Int("cache", 64, "page cache entry capacity (0 disables caching)")
	flag.Usage = usage
	flag.Parse()

	if *path == "" || flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	h, err := bpmap.Open(*path, *cacheCapacity)
	if err != nil {
		log.Fatalf("bpmapctl: open %s: %v", *path, err)
	}
	defer h.Close()

	if err := dispatch(h, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("bpmapctl: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bpmapctl -db PATH <command> [args]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  insert <key> <value>")
	fmt.Fprintln(os.Stderr, "  get <key>")
	fmt.Fprintln(os.Stderr, "  contains <key>")
	fmt.Fprintln(os.Stderr, "  delete <key>")
	fmt.Fprintln(os.Stderr, "  scan")
	fmt.Fprintln(os.Stderr, "  size")
}

func dispatch(h bpmap.Handle, cmd string, args []string) error {
	switch cmd {
	case "insert":
		if len(args) != 2 {
			return fmt.Errorf("insert requires <key> <value>")
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		return h.Insert(key, []byte(args[1]))

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("get requires <key>")
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		value, ok, err := h.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("(not found)")
			return nil
		}
		fmt.Printf("%s\n", value)
		return nil

	case "contains":
		if len(args) != 1 {
			return fmt.Errorf("contains requires <key>")
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		ok, err := h.Contains(key)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("delete requires <key>")
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		return h.Delete(key)

	case "scan":
		stream := h.Stream()
		for {
			entry, ok, err := stream.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			fmt.Printf("%d\t%s\n", entry.Key.Uint64(), entry.Value)
		}

	case "size":
		size, err := h.FileSize()
		if err != nil {
			return err
		}
		fmt.Println(size)
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseKey(s string) (bpmap.Key, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return bpmap.Key{}, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return bpmap.KeyFromUint64(v), nil
}
