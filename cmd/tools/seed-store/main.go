// cmd/tools/seed-store/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"topic-communities/internal/common/config"
	"topic-communities/internal/common/database"
	"topic-communities/internal/store"
)

func main() {
	postgresCmd := flag.NewFlagSet("postgres", flag.ExitOnError)
	pgConfig := postgresCmd.String("config", "", "Config file (default: configs/config.yaml lookup)")

	esCmd := flag.NewFlagSet("elasticsearch", flag.ExitOnError)
	esConfig := esCmd.String("config", "", "Config file (default: configs/config.yaml lookup)")
	esIndex := esCmd.String("index", "", "Index name (default: store.topic_index)")

	allCmd := flag.NewFlagSet("all", flag.ExitOnError)
	allConfig := allCmd.String("config", "", "Config file (default: configs/config.yaml lookup)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "postgres":
		postgresCmd.Parse(os.Args[2:])
		err = withConfig(*pgConfig, func(cfg *config.Config) error {
			return seedPostgres(ctx, cfg)
		})
	case "elasticsearch":
		esCmd.Parse(os.Args[2:])
		err = withConfig(*esConfig, func(cfg *config.Config) error {
			if *esIndex != "" {
				cfg.Store.TopicIndex = *esIndex
			}
			return seedElasticsearch(ctx, cfg)
		})
	case "all":
		allCmd.Parse(os.Args[2:])
		err = withConfig(*allConfig, func(cfg *config.Config) error {
			if err := seedPostgres(ctx, cfg); err != nil {
				return err
			}
			return seedElasticsearch(ctx, cfg)
		})
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: seed-store <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  postgres       Create the tables and load the reference topics and communities")
	fmt.Println("  elasticsearch  Create the topic index and load the reference topics")
	fmt.Println("  all            Both of the above")
}

func withConfig(path string, fn func(*config.Config) error) error {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	return fn(cfg)
}

func seedPostgres(ctx context.Context, cfg *config.Config) error {
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Ping(ctx); err != nil {
		return err
	}

	st := store.NewPostgres(pg.DB)
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	topics := store.SeedTopics()
	for _, t := range topics {
		if err := st.UpsertTopic(ctx, t); err != nil {
			return err
		}
	}
	communities := store.SeedCommunities()
	for _, c := range communities {
		if err := st.UpsertCommunity(ctx, c); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Seeded postgres with %d topics and %d communities\n", len(topics), len(communities))
	return nil
}

func seedElasticsearch(ctx context.Context, cfg *config.Config) error {
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	if err := es.Ping(ctx); err != nil {
		return err
	}

	ix := store.NewTopicIndex(es.Client, cfg.Store.TopicIndex, cfg.Store.SearchLimit)
	if err := ix.EnsureIndex(ctx); err != nil {
		return err
	}

	topics := store.SeedTopics()
	if err := ix.IndexTopics(ctx, topics); err != nil {
		return err
	}

	fmt.Printf("✓ Indexed %d topics into %s\n", len(topics), cfg.Store.TopicIndex)
	return nil
}
