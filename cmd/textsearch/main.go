// Command textsearch is the interactive CLI of spec.md §6: a menu
// (rebuild index / boolean search / TF-IDF search / exit) built on
// github.com/c-bata/go-prompt, grounded on the shape of the teacher's
// bin/engine and bin/query commands and on go-prompt's own inclusion in
// the teacher's go.mod.
package main

import (
	"fmt"
	"log"
	"os"

	prompt "github.com/c-bata/go-prompt"

	"textsearch/pkg/config"
	"textsearch/pkg/engine"
)

func noCompletions(prompt.Document) []prompt.Suggest { return nil }

func main() {
	configDir := "."
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	cfg := config.FromConfigDir(configDir)
	eng := engine.New(cfg)

	log.Println("Engine initialization started...")
	if err := eng.Initialize(); err != nil {
		log.Printf("initialization failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Engine initialization completed (dictionary entries: %d)\n", eng.DictionarySize())

	if err := eng.Load(); err != nil {
		log.Printf("no usable persisted index found (%v); choose \"rebuild\" from the menu\n", err)
	}

	runMenu(eng)
}

func runMenu(eng *engine.Engine) {
	for {
		fmt.Println()
		fmt.Println("1) rebuild index  2) boolean search  3) TF-IDF search  4) exit")
		choice := prompt.Input("menu> ", noCompletions)

		switch choice {
		case "1":
			rebuildIndex(eng)
		case "2":
			runQueryLoop(eng, runBooleanQuery)
		case "3":
			runQueryLoop(eng, runTFIDFQuery)
		case "4", "exit":
			os.Exit(0)
		default:
			fmt.Println("unrecognized choice")
		}
	}
}

func rebuildIndex(eng *engine.Engine) {
	stats, err := eng.IndexDocuments(0)
	if err != nil {
		fmt.Printf("rebuild failed: %v\n", err)
		return
	}
	fmt.Printf("indexed %d documents, %d terms, %d postings in %v\n",
		stats.DocCount, stats.TermCount, stats.PostingCount, stats.BuildDuration)

	if err := eng.Save(); err != nil {
		fmt.Printf("save failed: %v\n", err)
	}
}

func runQueryLoop(eng *engine.Engine, run func(*engine.Engine, string)) {
	for {
		query := prompt.Input("query> ", noCompletions)
		if query == "exit" {
			return
		}
		run(eng, query)
	}
}

func runBooleanQuery(eng *engine.Engine, query string) {
	results := eng.BooleanSearch(query)
	if len(results) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for _, docID := range results {
		fmt.Printf("%d %s\n", docID, eng.DisplayName(docID))
	}
}

func runTFIDFQuery(eng *engine.Engine, query string) {
	top, _ := eng.TFIDFSearch(query)
	if len(top) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for i, doc := range top {
		fmt.Printf("%d) %d %s %.4f\n", i+1, doc.DocID, eng.DisplayName(doc.DocID), doc.Score)
	}
}
