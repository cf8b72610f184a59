package main

import (
	"github.com/jdiggity/blog/highlight"
	"github.com/jdiggity/blog/site"
	"golang.org/x/text/language"
)

const siteURL = "https://www.jdiggity.me"

var blogConfig = site.Config{
	Name:         "Joe's Blog",
	Description:  "A cautionary tale on the horrors of programming ❤️",
	URL:          siteURL,
	Language:     language.English,
	Author:       "Joe",
	Sections:     []site.SectionID{"home", "posts", "about"},
	FeedSections: []site.SectionID{"posts"},
	ClassPrefix:  "",
	Attribution: site.Attribution{
		Text: "blog",
		URL:  "https://github.com/jdiggity/blog",
	},
}

// blogGrammars lists the highlighted languages in selection order. The
// first entry is the fallback for untagged and unknown blocks.
func blogGrammars() []highlight.Grammar {
	return []highlight.Grammar{
		highlight.MustLookupGrammar(highlight.PlainText),
		highlight.MustLookupGrammar("yaml"),
		highlight.MustLookupGrammar("swift"),
		highlight.MustLookupGrammar("go"),
	}
}

func newModifier(cfg *site.Config, conf *BuildConf, grammars []highlight.Grammar) *highlight.Modifier {
	return highlight.NewModifier(highlight.Format{
		ClassPrefix: cfg.ClassPrefix,
		TabWidth:    conf.TabWidth,
	}, grammars...)
}
