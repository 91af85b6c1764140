package main

import (
	"context"

	_ "github.com/kindform/go-kindform/models"
	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
