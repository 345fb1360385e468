package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mbRabaa/microservice-paiement/internal/payment"
	paymentPostgres "github.com/mbRabaa/microservice-paiement/internal/payment/postgres"
	"github.com/mbRabaa/microservice-paiement/pkg/logger"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample payments",
	Long:  `Seed the database with sample payments for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.App.Env, logger.WithLevel(cfg.Observability.Logging.Level))

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		service := payment.NewService(paymentPostgres.NewPaymentStore(db), logger.LoggerWrapper(), nil)

		ctx := context.Background()
		for i, sub := range samplePayments(seedCount) {
			record, err := service.RecordPayment(ctx, sub)
			if err != nil {
				log.Fatalf("failed to seed payment %d: %v", i+1, err)
			}
			fmt.Printf("Seeded payment %d (%s, %v)\n", record.ID, sub.Route, record.Amount)
		}
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 5, "number of sample payments to insert")
}

var seedRoutes = []string{"Paris-Lyon", "Lyon-Marseille", "Tunis-Sousse", "Sfax-Gabes", "Lille-Bruxelles"}

func samplePayments(n int) []*payment.Submission {
	subs := make([]*payment.Submission, 0, n)
	for i := 0; i < n; i++ {
		mode := payment.ModeCredit
		if i%2 == 1 {
			mode = payment.ModeDebit
		}
		subs = append(subs, &payment.Submission{
			Amount:      25 + i*5,
			PaymentMode: mode,
			ClientEmail: fmt.Sprintf("client%d@example.com", i+1),
			ClientName:  fmt.Sprintf("Client %d", i+1),
			Route:       seedRoutes[i%len(seedRoutes)],
			CardLast4:   fmt.Sprintf("%04d", 1000+i),
			CardBrand:   "visa",
		})
	}
	return subs
}
