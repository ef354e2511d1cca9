package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var (
	// ErrWalletNotFound is returned when a referenced wallet does not exist.
	ErrWalletNotFound = errors.New("wallet not found")
)

// WalletReader defines read operations for wallet aggregates.
type WalletReader interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, bool, error)
}

// WalletWriter defines write operations for wallet aggregates.
type WalletWriter interface {
	Save(ctx context.Context, wallet *domain.Wallet) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// Contribution is one requested contribution toward a wallet.
type Contribution struct {
	Amount   decimal.Decimal
	Currency string
	Units    domain.Units
}

// WalletService handles wallet operations and Kafka publishing.
type WalletService struct {
	readRepo    WalletReader
	writeRepo   WalletWriter
	userReader  UserReader
	kafkaWriter KafkaWriter
}

// NewWalletService creates a new WalletService. The Kafka writer may be
// nil, in which case events are skipped.
func NewWalletService(readRepo WalletReader, writeRepo WalletWriter, userReader UserReader, kafkaWriter KafkaWriter) *WalletService {
	return &WalletService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		userReader:  userReader,
		kafkaWriter: kafkaWriter,
	}
}

// publishContribution publishes a contribution event to Kafka.
func (s *WalletService) publishContribution(ctx context.Context, event models.ContributionEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal contribution event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.WalletID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish contribution event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Contribution event published to Kafka", "event_id", event.EventID, "amount", event.Amount)
	}
}

// CreateWallet creates a wallet for an owner. An empty currency creates an
// unfunded wallet.
func (s *WalletService) CreateWallet(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, currency string, actor string) (*domain.Wallet, error) {
	_, found, err := s.userReader.GetByID(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to get wallet owner", "userID", ownerID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	money := domain.EmptyMoney()
	if currency != "" {
		parsed, err := domain.ParseCurrency(currency)
		if err != nil {
			return nil, err
		}
		money, err = domain.NewMoney(amount, parsed, domain.UnitsMajor)
		if err != nil {
			return nil, err
		}
	}

	wallet := domain.NewWallet(uuid.New(), ownerID, money, actor, time.Now().UTC())
	if err := s.writeRepo.Save(ctx, wallet); err != nil {
		logger.Log.Errorw("failed to save wallet", "walletID", wallet.ID, "error", err)
		return nil, err
	}
	return wallet, nil
}

// GetWallet loads a wallet with its shares.
func (s *WalletService) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, found, err := s.readRepo.GetByID(ctx, walletID)
	if err != nil {
		logger.Log.Errorw("failed to get wallet", "walletID", walletID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

// Contribute records one or more contributions by a member toward a
// wallet. All contributions are applied and saved together; each one is
// published as a separate event.
func (s *WalletService) Contribute(ctx context.Context, walletID, contributorID uuid.UUID, contributions []Contribution, actor string) (*domain.Wallet, error) {
	wallet, found, err := s.readRepo.GetByID(ctx, walletID)
	if err != nil {
		logger.Log.Errorw("failed to get wallet", "walletID", walletID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrWalletNotFound
	}

	_, found, err = s.userReader.GetByID(ctx, contributorID)
	if err != nil {
		logger.Log.Errorw("failed to get contributor", "userID", contributorID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	now := time.Now().UTC()
	amounts := make([]domain.Money, 0, len(contributions))
	for _, c := range contributions {
		currency, err := domain.ParseCurrency(c.Currency)
		if err != nil {
			return nil, err
		}
		units := c.Units
		if units == "" {
			units = domain.UnitsMajor
		}
		money, err := domain.NewMoney(c.Amount, currency, units)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, money)
	}

	for _, money := range amounts {
		if err := wallet.Contribute(money, contributorID, actor, now); err != nil {
			return nil, err
		}
	}

	if err := s.writeRepo.Save(ctx, wallet); err != nil {
		logger.Log.Errorw("failed to save wallet", "walletID", walletID, "error", err)
		return nil, err
	}

	for _, money := range amounts {
		event := models.ContributionEvent{
			EventID:       uuid.NewString(),
			Timestamp:     now.Unix(),
			WalletID:      walletID.String(),
			ContributorID: contributorID.String(),
			Currency:      money.Currency().Code,
			Amount:        money.InMajorUnits().String(),
			Actor:         actor,
		}
		s.publishContribution(ctx, event)
	}

	return wallet, nil
}
