package main

import (
	"context"
	"encoding/json"
	"flag"
	"html/template"
	"io"
	"log"
	"os"
	"os/signal"

	"gopkg.in/yaml.v3"

	pagebuilder "github.com/goliatone/go-pagebuilder"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.SEO.Title}}</title>
{{if .SEO.Description}}<meta name="description" content="{{.SEO.Description}}">{{end}}
{{if .SEO.NoIndex}}<meta name="robots" content="noindex">{{end}}
{{if .CSS}}<style>{{.CSS}}</style>{{end}}
</head>
<body>
{{range .Blocks}}{{.HTML}}
{{end}}</body>
</html>
`))

func main() {
	var (
		configPath = flag.String("config", "", "Optional YAML config file")
		fixtures   = flag.String("fixtures", "", "Directory with Markdown seed pages (defaults to the built-in seeds)")
		slug       = flag.String("slug", "home", "Slug of the published page to render")
		lang       = flag.String("lang", "en", "Language to render")
		asJSON     = flag.Bool("json", false, "Print the rendered document as JSON")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var opts []pagebuilder.Option
	if cfg.Logging.Provider != "gologger" {
		level := console.ParseLevel(cfg.Logging.Level)
		opts = append(opts, pagebuilder.WithLoggerProvider(console.NewProvider(console.Options{
			Writer:   os.Stderr,
			MinLevel: &level,
		})))
	}

	module, err := pagebuilder.New(ctx, cfg, opts...)
	if err != nil {
		log.Fatalf("build module: %v", err)
	}
	defer module.Close()

	ctx = identity.WithActor(ctx, "example")
	var seeded int
	if *fixtures == "" {
		seeded, err = module.SeedFixtures(ctx, nil, ".")
	} else {
		seeded, err = module.SeedFixtures(ctx, os.DirFS(*fixtures), ".")
	}
	if err != nil {
		log.Fatalf("seed fixtures: %v", err)
	}
	log.Printf("seeded %d pages", seeded)

	doc, ok, err := module.RenderPublished(ctx, *slug, *lang)
	if err != nil {
		log.Fatalf("render %s: %v", *slug, err)
	}
	if !ok {
		log.Fatalf("no published page with slug %q", *slug)
	}

	if err := write(os.Stdout, doc, *asJSON); err != nil {
		log.Fatalf("write document: %v", err)
	}
}

func loadConfig(path string) (pagebuilder.Config, error) {
	cfg := pagebuilder.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func write(w io.Writer, doc pagebuilder.Document, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return documentTemplate.Execute(w, doc)
}
