package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-presign/pkg/config"
	"github.com/tendant/simple-presign/pkg/credentials"
	"github.com/tendant/simple-presign/pkg/presign"
)

const usage = `presign - print a SigV4 presigned URL for one S3 object

USAGE:
  presign -key <object-key> [options]

OPTIONS:
`

const envHelp = `
ENVIRONMENT VARIABLES:
  AWS_REGION, PRESIGN_BUCKET, PRESIGN_HOST, PRESIGN_REGIONAL_HOST,
  PRESIGN_METHOD, PRESIGN_EXPIRY_SECONDS, LOG_LEVEL,
  AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN

  Configuration can be loaded from a .env file in the current directory.
  Without static keys the AWS default credential chain is used.
`

func main() {
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, envHelp)
	}

	key := flag.String("key", "", "Object key (may contain '/')")
	bucket := flag.String("bucket", "", "Bucket name")
	region := flag.String("region", "", "Signing region")
	method := flag.String("method", "", "HTTP method the URL is valid for")
	expires := flag.Int64("expires", 0, "Validity in seconds (1..604800, default 86400)")
	host := flag.String("host", "", "Endpoint host (default s3.amazonaws.com)")
	regional := flag.Bool("regional", false, "Use s3.<region>.amazonaws.com")
	configFile := flag.String("config", "", "Optional config file (.env, .yaml, .json)")
	flag.Parse()

	if *key == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := []config.Option{config.WithEnv()}
	if *configFile != "" {
		opts = []config.Option{config.WithFile(*configFile)}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bucket":
			opts = append(opts, config.WithBucket(*bucket))
		case "region":
			opts = append(opts, config.WithRegion(*region))
		case "method":
			opts = append(opts, config.WithMethod(*method))
		case "expires":
			opts = append(opts, config.WithExpirySeconds(*expires))
		case "host", "regional":
			opts = append(opts, config.WithHost(*host, *regional))
		}
	})

	cfg, err := config.Load(opts...)
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider, err := credentials.Provider(ctx, cfg.Region, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
	if err != nil {
		logger.Error("Failed to set up credentials", "err", err)
		os.Exit(1)
	}
	id, err := credentials.Resolve(ctx, provider)
	if err != nil {
		logger.Error("Failed to resolve credentials", "err", err)
		os.Exit(1)
	}

	req := presign.SigningRequest{
		Region:        cfg.Region,
		Bucket:        cfg.Bucket,
		ObjectKey:     *key,
		Method:        cfg.Method,
		ExpirySeconds: cfg.ExpirySeconds,
	}
	id.Apply(&req)

	signer := presign.New(append(cfg.SignerOptions(), presign.WithLogger(logger))...)
	url, err := signer.Presign(req)
	if err != nil {
		logger.Error("Failed to presign URL", "err", err)
		os.Exit(1)
	}

	fmt.Println(url)
}
