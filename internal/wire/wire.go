package wire

import (
	"GreenGrove/internal/api"
	"GreenGrove/internal/api/config"
	"GreenGrove/internal/api/handler"
	"GreenGrove/internal/job"
	"GreenGrove/internal/pkg/cron"
	"GreenGrove/internal/pkg/es"
	pkgKafka "GreenGrove/internal/pkg/kafka"
	pkgMongo "GreenGrove/internal/pkg/mongo"
	"GreenGrove/internal/pkg/notify"
	"GreenGrove/internal/repository"
	"GreenGrove/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *pkgKafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	contentRepo := repository.NewContentRepo(db)
	moderationRepo := pkgMongo.NewModerationRepo(mongoDB)
	contentESRepo := es.NewContentRepo(es.Client)
	notifier := notify.NewWebhookNotifier()

	workflowService := service.NewWorkflowService(contentRepo, moderationRepo, contentESRepo, notifier)
	batchService := service.NewBatchService(contentRepo, workflowService, contentESRepo)
	contentService := service.NewContentService(contentRepo, contentESRepo)

	handlers := &api.HandlersGroup{
		ContentHandler: handler.NewContentHandler(contentService),
		AuditHandler:   handler.NewAuditHandler(contentService, workflowService, batchService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := pkgKafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	contentMetricsJob := job.NewContentMetricsJob(contentRepo)
	cronMgr := cron.NewCronManager(contentMetricsJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
