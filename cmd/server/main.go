// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/cms-backend/internal/controller"
	"github.com/unclebandit/cms-backend/internal/db"
	"github.com/unclebandit/cms-backend/internal/middleware"
	"github.com/unclebandit/cms-backend/internal/queue"
	"github.com/unclebandit/cms-backend/internal/repository"
	"github.com/unclebandit/cms-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	pool, err := db.Connect()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("dev-secret-please-change")
		log.Println("JWT_SECRET not set, using development default")
	}

	customerRepo := &repository.CustomerRepository{DB: pool}
	addressRepo := &repository.AddressRepository{DB: pool}
	referenceRepo := &repository.ReferenceRepository{DB: pool}
	userRepo := &repository.UserRepository{DB: pool}
	eventRepo := &repository.EventRepository{DB: pool}

	// With a broker configured, events go to RabbitMQ and a separate worker
	// persists them. Without one, an in-process subscriber does it.
	var q queue.Queue
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpQueue, err := queue.DialAMQP(url)
		if err != nil {
			log.Fatal("failed to connect to broker: ", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartCustomerEventSubscriber(memQueue, eventRepo)
		q = memQueue
	}

	runTx := db.Runner(pool)

	customerService := &service.CustomerService{
		CustomerRepo:  customerRepo,
		AddressRepo:   addressRepo,
		ReferenceRepo: referenceRepo,
		RunTx:         runTx,
		Queue:         q,
	}
	addressService := &service.AddressService{
		AddressRepo:   addressRepo,
		CustomerRepo:  customerRepo,
		ReferenceRepo: referenceRepo,
		RunTx:         runTx,
	}
	referenceService := &service.ReferenceService{ReferenceRepo: referenceRepo}
	authService := &service.AuthService{
		UserRepo:  userRepo,
		JWTSecret: jwtSecret,
		TokenTTL:  24 * time.Hour,
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
		AddressService:  addressService,
	}
	addressController := &controller.AddressController{AddressService: addressService}
	referenceController := &controller.ReferenceController{ReferenceService: referenceService}
	authController := &controller.AuthController{AuthService: authService}

	r := chi.NewRouter()

	// Public
	r.Post("/auth/login", authController.Login)

	// Protected by the bearer-token gate
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/customers", customerController.List)
		r.Post("/customers", customerController.Create)
		r.Get("/customers/{id}", customerController.Get)
		r.Put("/customers/{id}", customerController.Update)
		r.Delete("/customers/{id}", customerController.Delete)
		r.Get("/customers/{id}/addresses", customerController.ListAddresses)
		r.Post("/customers/{id}/addresses", customerController.AddAddress)

		r.Put("/addresses/{id}", addressController.Update)
		r.Delete("/addresses/{id}", addressController.Delete)

		r.Get("/reference/states", referenceController.States)
		r.Get("/reference/cities", referenceController.Cities)
		r.Get("/reference/states/{id}/cities", referenceController.CitiesByState)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
