package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/category"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/customer"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/inventory"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/order"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/product"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr string
	DB   *sql.DB
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines to finish before shutting down the server

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	s.prep()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: s.router(),
	}

	// start server and listen for [os.Signal] signals to gracefully
	// shutdown the server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen for shutdown signals
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for the server to function.
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) router() *chi.Mux {
	r := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /products/ -> /products
	r.Use(chimiddleware.StripSlashes)

	middleware := middlewares.NewMiddleware()
	r.Use(middleware.RequestTag)

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(categoryService)
	categoryHandler.RegisterRoutes(r)

	// product feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(productStore)
	productHandler := product.NewHandler(productService)
	productHandler.RegisterRoutes(r)

	// customer feature
	customerStore := customer.NewStore(s.DB)
	customerService := customer.NewService(customerStore)
	customerHandler := customer.NewHandler(customerService)
	customerHandler.RegisterRoutes(r)

	// order feature; registers the order events the restock watcher
	// subscribes to, so it must come first
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		customerService,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(orderService)
	orderHandler.RegisterRoutes(r)

	// inventory restock watcher
	inventoryStore := inventory.NewStore(s.DB)
	inventoryService := inventory.NewService(inventoryStore)
	inventory.NewEventHandler(
		&inventory.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Service:       inventoryService,
		},
	)

	return r
}
