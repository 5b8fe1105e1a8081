package main

import (
	"context"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"github.com/gatherly/event-hub/pkg/auth"
	"github.com/gatherly/event-hub/pkg/config"

	paymentsrepo "github.com/gatherly/event-hub/repos/payments"
	resendrepo "github.com/gatherly/event-hub/repos/resend"
	"github.com/gatherly/event-hub/repos/store"

	"github.com/gatherly/event-hub/services/dashboard"
	"github.com/gatherly/event-hub/services/events"
	"github.com/gatherly/event-hub/services/friends"
	"github.com/gatherly/event-hub/services/organizations"
	"github.com/gatherly/event-hub/services/payments"
)

func main() {
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	credentialsOption := option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	st := store.New(firestoreClient)
	resendService := resendrepo.NewService(cfg.ResendKey, cfg.HostURL)
	paymentsClient := paymentsrepo.NewService(st, cfg.PaymentsAPIURL, cfg.PaymentsKey)

	dashboardService := dashboard.NewDashboardService(st)
	eventsService := events.NewEventsService(st)
	organizationsService := organizations.NewOrganizationsService(st, resendService)
	friendsService := friends.NewFriendsService(st, firebaseApp, resendService)
	paymentsService := payments.NewPaymentsService(st, paymentsClient)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSHosts, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(corsConfig))

	dashboardRouter := router.Group("/dashboard/v1")
	dashboardRouter.Use(auth.AuthMiddleware(firebaseApp))

	eventsRouter := router.Group("/events/v1")
	eventsRouter.Use(auth.AuthMiddleware(firebaseApp))

	browseRouter := router.Group("/browse/v1")

	organizationsRouter := router.Group("/organizations/v1")
	organizationsRouter.Use(auth.AuthMiddleware(firebaseApp))

	invitesRouter := router.Group("/invites/v1")
	invitesRouter.Use(auth.AuthMiddleware(firebaseApp))

	friendsRouter := router.Group("/friends/v1")
	friendsRouter.Use(auth.AuthMiddleware(firebaseApp))

	paymentsRouter := router.Group("/payments/v1")
	paymentsRouter.Use(auth.AuthMiddleware(firebaseApp))

	dashboard.NewHTTPHandler(dashboard.HTTPOptions{
		Service: dashboardService,
		Router:  dashboardRouter,
	})

	events.NewHTTPHandler(events.HTTPOptions{
		Service: eventsService,
		Router:  eventsRouter,
	})

	events.NewPublicHTTPHandler(events.HTTPOptions{
		Service: eventsService,
		Router:  browseRouter,
	})

	organizations.NewHTTPHandler(organizations.HTTPOptions{
		Service: organizationsService,
		Router:  organizationsRouter,
	})

	organizations.NewInviteHTTPHandler(organizations.HTTPOptions{
		Service: organizationsService,
		Router:  invitesRouter,
	})

	friends.NewHTTPHandler(friends.HTTPOptions{
		Service: friendsService,
		Router:  friendsRouter,
	})

	payments.NewHTTPHandler(payments.HTTPOptions{
		Service: paymentsService,
		Router:  paymentsRouter,
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
