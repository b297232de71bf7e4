// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Command yago4 partitions a Wikidata N-Triples dump into a statement
// store and runs the build plan over it to produce the YAGO 4 files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yago-naga/yago4/internal/plan"
	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/upload"
)

var logger *log.Logger

func main() {
	cache := flag.String("c", "temp.db", "path to the partitioned statement store")
	flag.Parse()

	logfile, err := os.OpenFile("yago4-builder.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
	defer logfile.Close()
	logger = log.New(logfile, "", log.Ldate|log.Ltime|log.LUTC|log.Lshortfile)

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	var cmdErr error
	switch args[0] {
	case "partition":
		cmdErr = runPartition(*cache, args[1:])
	case "build":
		cmdErr = runBuild(*cache, args[1:])
	default:
		usage()
	}
	if cmdErr != nil {
		logger.Printf("yago4 %s failed: %v", args[0], cmdErr)
		log.Fatal(cmdErr)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: yago4 [-c cache.db] partition -f <dump.nt.gz>\n")
	fmt.Fprintf(os.Stderr, "       yago4 [-c cache.db] build -o <dir> (--full|--all-wikis|--en-wiki) [-upload-bucket bucket] [-upload-key keyfile]\n")
	os.Exit(2)
}

// runPartition ingests a Wikidata N-Triples dump file into the
// partitioned statement store at cachePath.
func runPartition(cachePath string, args []string) error {
	fs := flag.NewFlagSet("partition", flag.ExitOnError)
	dumpFile := fs.String("f", "", "path to the Wikidata dump, in N-Triples format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dumpFile == "" {
		usage()
	}

	store, err := pts.Open(cachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Printf("partitioning %s into %s", *dumpFile, cachePath)
	if err := store.LoadNTriples(*dumpFile); err != nil {
		return err
	}
	logger.Printf("partitioning done")
	return nil
}

// runBuild runs the build plan against the store at cachePath and
// writes its result files into outDir, optionally uploading them
// afterwards to S3-compatible object storage.
func runBuild(cachePath string, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	outDir := fs.String("o", "", "directory to write the YAGO 4 files into")
	full := fs.Bool("full", false, "keep every Wikidata item")
	allWikis := fs.Bool("all-wikis", false, "keep only items with a sitelink to any Wikipedia")
	enWiki := fs.Bool("en-wiki", false, "keep only items with an English Wikipedia article")
	uploadBucket := fs.String("upload-bucket", "", "if set, upload the result files to this S3 bucket")
	uploadKey := fs.String("upload-key", "", "path to JSON file with Endpoint/Key/Secret for -upload-bucket")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outDir == "" {
		usage()
	}

	flavor, err := flavorFromFlags(*full, *allWikis, *enWiki)
	if err != nil {
		return err
	}

	store, err := pts.Open(cachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Printf("building YAGO 4 into %s", *outDir)
	if err := plan.GenerateYago(store, *outDir, flavor); err != nil {
		return err
	}
	logger.Printf("build done")

	if *uploadBucket == "" {
		return nil
	}
	return uploadResults(*outDir, *uploadBucket, *uploadKey)
}

func flavorFromFlags(full, allWikis, enWiki bool) (plan.Flavor, error) {
	n := 0
	for _, set := range []bool{full, allWikis, enWiki} {
		if set {
			n++
		}
	}
	if n != 1 {
		return plan.Full, fmt.Errorf("yago4: exactly one of --full, --all-wikis, --en-wiki must be given")
	}
	switch {
	case enWiki:
		return plan.EnglishWikipedia, nil
	case allWikis:
		return plan.AllWikipedias, nil
	default:
		return plan.Full, nil
	}
}

type uploadConfig struct{ Endpoint, Key, Secret string }

// uploadResults ships every file in dir to bucket, named by its base
// name, skipping files already present there.
func uploadResults(dir, bucket, keyPath string) error {
	var config uploadConfig
	if keyPath == "" {
		config.Endpoint = os.Getenv("S3_ENDPOINT")
		config.Key = os.Getenv("S3_KEY")
		config.Secret = os.Getenv("S3_SECRET")
	} else {
		data, err := os.ReadFile(keyPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return err
		}
	}

	client, err := upload.NewClient(config.Endpoint, config.Key, config.Secret)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)
		if err := upload.PutFile(ctx, client, bucket, name, path); err != nil {
			return err
		}
		logger.Printf("uploaded %s to %s/%s", path, bucket, name)
	}
	return nil
}
