package main

import (
	"context"
	"flag"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/punjabfloodrelief/relief-api/share/helpline"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("relief")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var dataFile string
	flag.StringVar(&dataFile, "f", "data.json", "path of the helpline directory file")
	flag.Parse()

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	if err := helpline.ImportFile(client, viper.GetString("mongo.database"), dataFile); err != nil {
		panic(err)
	}
}
