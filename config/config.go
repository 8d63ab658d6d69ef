package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	ListenAddr     string        `yaml:"listen_addr"`
	PublicURL      string        `yaml:"public_url"`
	BackendURL     string        `yaml:"backend_url"`
	CheckoutPath   string        `yaml:"checkout_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ClientID       string        `yaml:"client_id"`
	CartPolicy     string        `yaml:"cart_policy"`

	StateBackend string        `yaml:"state_backend"`
	StateTTL     time.Duration `yaml:"state_ttl"`

	DB    DBSettings    `yaml:"db"`
	Redis RedisSettings `yaml:"redis"`
	Kafka KafkaSettings `yaml:"kafka"`
}

type DBSettings struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisSettings struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaSettings struct {
	Broker  string `yaml:"broker"`
	Topic   string `yaml:"topic"`
	GroupID string `yaml:"group_id"`
}

func Defaults() Settings {
	return Settings{
		ListenAddr:     ":8090",
		PublicURL:      "http://localhost:5173",
		BackendURL:     "http://localhost:8000/api/v1",
		CheckoutPath:   "/order/checkout/create-checkout-session",
		RequestTimeout: 15 * time.Second,
		CartPolicy:     "clear",
		StateBackend:   "memory",
		Redis:          RedisSettings{Host: "localhost", Port: "6379"},
		Kafka:          KafkaSettings{Topic: "storefront-events", GroupID: "storefront"},
	}
}

// Load applies defaults, then the YAML file named by STOREFRONT_CONFIG, then env vars.
func Load() (Settings, error) {
	s := Defaults()
	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		if err := s.loadFile(path); err != nil {
			return s, err
		}
	}
	if err := s.loadEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (s *Settings) loadEnv() error {
	s.ListenAddr = getEnv("LISTEN_ADDR", s.ListenAddr)
	s.PublicURL = getEnv("PUBLIC_URL", s.PublicURL)
	s.BackendURL = getEnv("BACKEND_URL", s.BackendURL)
	s.CheckoutPath = getEnv("CHECKOUT_PATH", s.CheckoutPath)
	s.ClientID = getEnv("CLIENT_ID", s.ClientID)
	s.CartPolicy = getEnv("CART_POLICY", s.CartPolicy)
	s.StateBackend = getEnv("STATE_BACKEND", s.StateBackend)

	s.DB.Host = getEnv("DB_HOST", s.DB.Host)
	s.DB.Port = getEnv("DB_PORT", s.DB.Port)
	s.DB.Name = getEnv("DB_NAME", s.DB.Name)
	s.DB.User = getEnv("DB_USER", s.DB.User)
	s.DB.Password = getEnv("DB_PASSWORD", s.DB.Password)

	s.Redis.Host = getEnv("REDIS_HOST", s.Redis.Host)
	s.Redis.Port = getEnv("REDIS_PORT", s.Redis.Port)

	s.Kafka.Broker = getEnv("KAFKA_BROKER", s.Kafka.Broker)
	s.Kafka.Topic = getEnv("KAFKA_TOPIC", s.Kafka.Topic)
	s.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", s.Kafka.GroupID)

	var err error
	if s.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", s.RequestTimeout); err != nil {
		return err
	}
	if s.StateTTL, err = getDuration("STATE_TTL", s.StateTTL); err != nil {
		return err
	}
	return nil
}

func (s Settings) Validate() error {
	switch s.StateBackend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unknown state backend %q", s.StateBackend)
	}
	switch s.CartPolicy {
	case "overwrite", "clear", "reject":
	default:
		return fmt.Errorf("unknown cart policy %q", s.CartPolicy)
	}
	if s.BackendURL == "" {
		return fmt.Errorf("backend url is required")
	}
	return nil
}

func (s Settings) PostgresDSN() string {
	return "host=" + s.DB.Host + " port=" + s.DB.Port + " user=" + s.DB.User +
		" password=" + s.DB.Password + " dbname=" + s.DB.Name + " sslmode=disable"
}

func MustInitPostgres(s Settings) *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s Settings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.Redis.Host + ":" + s.Redis.Port,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// ConsumerGroup gives each client its own group so every instance reads
// every shared event.
func (s Settings) ConsumerGroup(clientID string) string {
	if clientID == "" {
		return s.Kafka.GroupID
	}
	return s.Kafka.GroupID + "-" + clientID
}

func NewKafkaReader(s Settings, clientID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.Kafka.Broker},
		Topic:   s.Kafka.Topic,
		GroupID: s.ConsumerGroup(clientID),
	})
}

func NewKafkaWriter(s Settings) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(s.Kafka.Broker),
		Topic:    s.Kafka.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid duration for %s: %q", key, value)
	}
	return time.Duration(seconds) * time.Second, nil
}
