// Package docs embeds the nova2k documentation.
//
// The topics are the markdown files listed in readme.md, one line
// "* <name>: <summary>" per topic.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var files embed.FS

// Index is the topic listing the others.
const Index = "readme"

// ErrUnknownTopic is returned when reading a topic that is not embedded.
var ErrUnknownTopic = errors.New("unknown topic")

var indexEntry = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Topic is an entry of the index.
type Topic struct {
	Name    string
	Summary string
}

// Topics returns the topics in the order of the index.
func Topics() ([]Topic, error) {
	content, err := files.ReadFile(Index + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, line := range strings.Split(string(content), "\n") {
		if m := indexEntry.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Summary: m[2]})
		}
	}
	return topics, nil
}

// Read returns the markdown of the named topics, one after the other.
// "*" stands for every topic of the index, and no name for the index itself.
func Read(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{Index}
	}
	var b strings.Builder
	for _, name := range names {
		if name != "*" {
			if err := read(&b, name); err != nil {
				return "", err
			}
			continue
		}
		topics, err := Topics()
		if err != nil {
			return "", err
		}
		for _, t := range topics {
			if err := read(&b, t.Name); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

func read(b *strings.Builder, name string) error {
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return fmt.Errorf("%w %q, see nova2k topic", ErrUnknownTopic, name)
	}
	b.Write(content)
	b.WriteByte('\n')
	return nil
}
