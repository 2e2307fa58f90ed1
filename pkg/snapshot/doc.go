// Package snapshot renders a page and publishes the HTML to a Store.
//
// S3Store writes objects to an S3 bucket or any S3-compatible service.
// RedisStore keeps pages in Redis with an optional TTL, for a cache server
// to read back. DirStore writes files under a local directory.
//
//	client := snapshot.NewS3Client(snapshot.S3Config{Region: "eu-west-1"})
//	store := snapshot.NewS3Store(client, "my-site", "previews/")
//	pub := snapshot.NewPublisher(store)
//
//	res, err := pub.Publish(ctx, "index.html", render.PageOptions{Title: "Demo"}, body)
package snapshot
