package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/merze/merzebackend/controllers"
	"github.com/merze/merzebackend/database"
	"github.com/merze/merzebackend/middleware"
	"github.com/merze/merzebackend/services"
	"github.com/merze/merzebackend/store"
	"github.com/merze/merzebackend/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	stores := store.Stores{
		Sections:  store.NewMongoSections(database.OpenCollection("sections")),
		Types:     store.NewMongoTypes(database.OpenCollection("types")),
		Products:  store.NewMongoProducts(database.OpenCollection("products")),
		Users:     store.NewMongoUsers(database.OpenCollection("users")),
		Addresses: store.NewMongoAddresses(database.OpenCollection("addresses")),
		Orders:    store.NewMongoOrders(database.OpenCollection("orders")),
	}

	expander := services.NewExpander(stores)
	catalog := services.NewCatalog(stores.Sections, stores.Types)
	products := services.NewProducts(stores.Products, catalog, expander)
	users := services.NewUsers(stores.Users, stores.Addresses, stores.Orders, expander)

	imageStorage, err := utils.NewImageStorage(ctx)
	if err != nil {
		log.Fatal(err)
	}
	imageValidator := utils.NewImageValidator()

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	log.Printf("Env config origins list: %q", origins)
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Merze API is working!")
	})

	api := r.Group("/api")
	{
		api.GET("/products", controllers.GetProducts(products))
		api.POST("/create-products", controllers.CreateProducts(products))
		api.GET("/products/:productId", controllers.GetProduct(products))
		api.POST("/products/:productId", controllers.UpdateProduct(products))
		api.DELETE("/products/:productId", controllers.DeleteProduct(products))

		api.GET("/sections", controllers.GetSections(catalog))
		api.POST("/sections", controllers.AddSection(catalog))
		api.GET("/sections/:id", controllers.GetSection(catalog))
		api.POST("/sections/:id/images", controllers.AttachSectionImages(catalog, imageStorage, imageValidator))

		api.GET("/categories", controllers.GetTypes(catalog))
		api.GET("/categories/:categoryId", controllers.GetType(catalog))
		api.POST("/types", controllers.AddType(catalog))
		api.POST("/types/:id/images", controllers.AttachTypeImages(catalog, imageStorage, imageValidator))

		api.POST("/users", controllers.CreateUser(users))
		api.GET("/users", controllers.GetUsers(users))
		api.GET("/user/:id", controllers.GetUser(users))
		api.DELETE("/user/:id", controllers.DeleteUser(users))

		api.POST("/users/:id/addresses", controllers.AddAddress(users))
		api.GET("/users/:id/addresses", controllers.GetAddresses(users))
		api.DELETE("/users/:id/addresses/:addressId", controllers.RemoveAddress(users))

		api.POST("/orders", controllers.PlaceOrder(users))
	}

	// Server listens on PORT (default 8080)
	r.Run()
}
