package api

import (
	"context"
	"fmt"
	"os"

	"github.com/alex-pricope/contest-voting/api/controllers"
	"github.com/alex-pricope/contest-voting/api/transport"
	"github.com/alex-pricope/contest-voting/logging"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	var (
		participantStorage storage.ParticipantStorage
		ledgerStorage      storage.VoteLedgerStorage
		admissionStorage   storage.VoteAdmissionStorage
		settingStorage     storage.SettingStorage
		photoStorage       storage.PhotoStorage
	)

	if s.config.Driver == "memory" {
		logging.Log.Warn("Using in-memory storage, all data is lost on restart")
		mem := storage.NewMemoryStore()
		participantStorage = mem.Participants()
		ledgerStorage = mem.Ledger()
		admissionStorage = mem.Admission()
		settingStorage = mem.Settings()
		photoStorage = mem.Photos()
	} else {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logging.Log.Errorf("failed to load AWS config: %v", err)
			panic("failed to load AWS config")
		}

		dynamoClient := dynamodb.NewFromConfig(cfg)

		participantStorage = &storage.DynamoParticipantStorage{
			Client:    dynamoClient,
			TableName: s.config.TableNameParticipants,
		}
		ledgerStorage = &storage.DynamoVoteLedgerStorage{
			Client:    dynamoClient,
			TableName: s.config.TableNameVoteLedger,
		}
		admissionStorage = &storage.DynamoVoteAdmissionStorage{
			Client:                dynamoClient,
			LedgerTableName:       s.config.TableNameVoteLedger,
			ParticipantsTableName: s.config.TableNameParticipants,
		}
		settingStorage = &storage.DynamoSettingStorage{
			Client:    dynamoClient,
			TableName: s.config.TableNameSettings,
		}
		photoStorage = storage.NewS3PhotoStorage(s3.NewFromConfig(cfg), s.config.PhotoBucket)
	}

	//Register controllers
	votingController := controllers.NewVotingController(participantStorage, ledgerStorage, admissionStorage)
	votingController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(admissionStorage, ledgerStorage, photoStorage)
	adminController.RegisterRoutes(r)
	participantController := controllers.NewParticipantMetaController(participantStorage, photoStorage)
	participantController.RegisterRoutes(r)
	settingsController := controllers.NewSettingsController(settingStorage)
	settingsController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
