// Package config loads the project configuration from declarative.json,
// declarative.yaml (or .yml) or declarative.toml.
//
//	{
//	  "name": "showcase",
//	  "server": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "metricsPath": "/metrics",
//	    "shutdownTimeout": "10s"
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "snapshot": {
//	    "bucket": "my-site",
//	    "prefix": "previews/",
//	    "region": "eu-west-1",
//	    "key": "index.html",
//	    "redis": {"addr": "localhost:6379", "ttl": "24h"}
//	  },
//	  "debug": false
//	}
//
// Missing fields take the defaults from New. Command line flags are applied
// on top of the loaded file by the caller.
package config
