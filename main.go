package main

import (
	"context"
	"time"

	"github.com/Rehnamol/boqmerge/internal/app"
)

func main() {
	application := app.New()

	wait := application.Start()

	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application.Stop(ctx)
}
