// Command brisk runs a small demo server exercising the framework's route
// patterns, groups, lifecycle hooks, and text/JSON/raw-body responses.
package main

import (
	"flag"
	"log"

	"github.com/brisk-http/brisk/pkg"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML server config")
	addr := flag.String("addr", ":8080", "address to listen on when -config is not given")
	flag.Parse()

	cfg := pkg.ServerConfig{Address: *addr}
	if *configPath != "" {
		loaded, err := pkg.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg.ApplyDefaults()
	}

	app := pkg.New()

	app.Begin(func(ctx *pkg.Context) {
		ctx.RequestID = ctx.StartTime.Format("150405.000000")
	})

	app.Get("/", func(ctx *pkg.Context) {
		ctx.Response.FromText("Hello world!")
	})

	app.Get("/greet/{name}", func(ctx *pkg.Context) {
		ctx.Response.FromText("Hello, " + ctx.Request.Params["name"] + "!")
	})

	app.Post("/echo", func(ctx *pkg.Context) {
		ctx.Response.FromData(ctx.Request.Header("Content-Type"), ctx.Request.Body)
	})

	api := pkg.NewGroup("/api")
	api.Before(func(ctx *pkg.Context) {
		ctx.Response.Header("X-Api-Version", "1")
	})
	api.Get("/users/{id:[0-9]+}", func(ctx *pkg.Context) {
		if err := ctx.Response.FromJSON(map[string]string{"id": ctx.Request.Params["id"]}); err != nil {
			ctx.Response.StatusCode(500).FromText("encode error")
		}
	})
	app.Mount(api)

	app.Finish(func(ctx *pkg.Context) {
		log.Printf("%s %s -> %d", ctx.Request.Method, ctx.Request.URI.Path, ctx.Response.Status)
	})

	log.Printf("brisk listening on %s (workers=%d)", cfg.Address, cfg.WorkerCount)
	log.Fatal(app.Run(pkg.ServerOptions{
		Address:       cfg.Address,
		WorkerCount:   cfg.WorkerCount,
		SlotTableSize: cfg.SlotTableSize,
		TaskPoolSize:  cfg.TaskPoolSize,
		ReadBuffer:    cfg.ReadBuffer,
		WriteBuffer:   cfg.WriteBuffer,
		ReuseAddr:     cfg.ReuseAddr,
		ReusePort:     cfg.ReusePort,
		Policy:        cfg.Policy(),
	}))
}
