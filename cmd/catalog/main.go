package main

import (
	"context"
	"time"

	"github.com/Pavithra-p25/ecommerce-catalog/config"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/app"
	"github.com/Pavithra-p25/ecommerce-catalog/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	catalogService := app.New(sigCtx, cfg)

	catalogService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	catalogService.Close(ctx)
}
