package views

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Title is the dashboard page title
const Title = "1KGP ONT Tandem Repeat Browser"

// AboutMarkdown is the sidebar attribution text
const AboutMarkdown = `This app was built from data made available by the
[1000 Genomes ONT Sequencing Consortium](https://millerlaboratory.com/1000G-ONT.html).
Genotype data was generated using *Vamos* (Ren et al., 2023) and repeat locus metadata was
sourced from [STRchive](https://strchive.org/index).`

// RenderMarkdown converts markdown to HTML. Links open in a new tab; raw HTML in the source
// is escaped.
func RenderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return template.HTML(markdown.Render(doc, renderer))
}
