// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package supervisor provides process supervision for the Tastemap server using suture v4.

# Tree

	RootSupervisor ("tastemap")
	├── DataSupervisor ("data-layer")
	│   └── BadgerGCService (DATA_STORE=badger only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that fail are restarted with backoff inside their own layer.
Supervisor events are logged through sutureslog, which writes to zerolog
via logging.NewSlogLogger.

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    ...
	}
*/
package supervisor
