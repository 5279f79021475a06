// Package config provides configuration parsing for hookrt.
//
// Configuration is read from hookrt.json or hookrt.yaml in the working
// directory (or a file passed with --config) and overlaid with HOOKRT_*
// environment variables.
//
// # Configuration File Structure
//
//	{
//	  "name": "counter",
//	  "runtime": {
//	    "strictDeps": false
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "hookrt"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "hookrt"
//	  },
//	  "inspector": {
//	    "addr": "localhost:7070",
//	    "history": 64
//	  }
//	}
//
// # Environment
//
//	HOOKRT_RUNTIME_STRICT_DEPS=true
//	HOOKRT_LOG_LEVEL=debug
//	HOOKRT_INSPECTOR_ADDR=:9000
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
