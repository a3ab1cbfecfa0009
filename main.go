package main

import (
	"goblog/crud"
	"goblog/http"
)

// main is the app's entry point.
func main() {
	config := LoadConfig()

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper, config.HMACKey),
		crud.WithGroup(),
		crud.WithPost(),
		crud.WithComment(),
		crud.WithFollow(),
		crud.WithImage(config.MediaDir),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(
		http.ServerConfig{
			IsProd:   config.IsProd(),
			PageSize: config.PageSize,
			CacheTTL: config.IndexCacheTTL,
			MediaDir: config.MediaDir,
			CSRFKey:  config.CSRFKey,
		},
		services.User,
		services.Group,
		services.Post,
		services.Comment,
		services.Follow,
		services.Image,
	)

	// Serve the app.
	must(server.Run(config.Addr))
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
