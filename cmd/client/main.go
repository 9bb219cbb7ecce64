package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	grpcapi "simple-notes-manager/internal/api/grpc"
)

const defaultAddress = "localhost:50051"

var (
	address string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "notes-client",
	Short:        "Command line client for the notes gRPC API",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Адрес сервера из переменной окружения или значение по умолчанию
	defaultAddr := os.Getenv("SERVER_ADDRESS")
	if defaultAddr == "" {
		defaultAddr = defaultAddress
	}

	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", defaultAddr, "gRPC server address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for unary calls")
}

// withClient создает соединение с сервером и вызывает fn с клиентом NotesService
func withClient(fn func(client *grpcapi.Client) error) error {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer conn.Close()

	return fn(grpcapi.NewClient(conn))
}

// callContext контекст с таймаутом для unary вызовов
func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// printJSON выводит значение в stdout в формате JSON с отступами
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printError выводит ошибку; для gRPC статусов добавляет код и детали
func printError(err error) {
	st, ok := status.FromError(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %s: %s\n", st.Code(), st.Message())
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			fmt.Fprintf(os.Stderr, "  reason: %s (domain %s)\n", d.GetReason(), d.GetDomain())
		case *errdetails.BadRequest:
			for _, violation := range d.GetFieldViolations() {
				fmt.Fprintf(os.Stderr, "  field %s: %s\n", violation.GetField(), violation.GetDescription())
			}
		}
	}
}
