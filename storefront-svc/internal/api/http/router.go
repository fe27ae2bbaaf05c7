package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", SessionHeader},
		ExposedHeaders: []string{SessionHeader},
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Storefront Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
