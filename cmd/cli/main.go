package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/vagnerwentz/bankapi/infra/initializer"
	"github.com/vagnerwentz/bankapi/pkg/app"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/dto"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  accounts
  create <number> <name> [special_limit]
  deposit <number> <amount>
  withdraw <number> <amount>
  transfer <from> <to> <amount>
  history <number>`

var (
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	ctx := context.Background()
	cfg, err := config.Load(".env")
	if err != nil {
		errColor.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	rt, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		errColor.Println("Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	defer rt.Close() //nolint: errcheck

	if err := execute(ctx, app.New(rt.Deps, cfg), os.Stdout, os.Args[1:]); err != nil {
		errColor.Println("Error:", err)
		_ = rt.Close()
		os.Exit(1)
	}
}

func execute(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "accounts":
		accs, err := a.AccountService.GetAll(ctx)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%-10s %-24s %12s %12s\n", "NUMBER", "NAME", "BALANCE", "LIMIT")
		for _, acc := range accs {
			fmt.Fprintf(out, "%-10d %-24s %12.2f %12.2f\n", acc.Number, acc.Name, acc.Balance, acc.SpecialLimit)
		}
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: create <number> <name> [special_limit]")
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		limit := 0.0
		if len(args) > 2 {
			if limit, err = parseAmount(args[2]); err != nil {
				return err
			}
		}
		acc, err := a.AccountService.Create(ctx, dto.AccountCreate{Number: number, Name: args[1], SpecialLimit: limit})
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "Account created: number=%d id=%s\n", acc.Number, acc.ID)
	case "deposit", "withdraw":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <number> <amount>", cmd)
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		var tx *account.Transaction
		if cmd == "deposit" {
			tx, err = a.TransactionService.Deposit(ctx, dto.DepositRequest{ReceiverNumber: number, Amount: amount})
		} else {
			tx, err = a.TransactionService.Withdraw(ctx, dto.WithdrawRequest{SourceNumber: number, Amount: amount})
		}
		if err != nil {
			return err
		}
		printTransaction(out, tx)
	case "transfer":
		if len(args) < 3 {
			return fmt.Errorf("usage: transfer <from> <to> <amount>")
		}
		from, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		to, err := parseNumber(args[1])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		tx, err := a.TransactionService.Transfer(ctx, dto.TransferRequest{SourceNumber: from, ReceiverNumber: to, Amount: amount})
		if err != nil {
			return err
		}
		printTransaction(out, tx)
	case "history":
		if len(args) < 1 {
			return fmt.Errorf("usage: history <number>")
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		txs, err := a.TransactionService.History(ctx, number)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%-36s %-9s %12s %10s %10s\n", "ID", "TYPE", "AMOUNT", "FROM", "TO")
		for _, tx := range txs {
			fmt.Fprintf(out, "%-36s %-9s %12.2f %10s %10s\n", tx.ID, tx.Type, tx.Amount, numberOf(tx.Source), numberOf(tx.Receiver))
		}
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	return nil
}

func printTransaction(out io.Writer, tx *account.Transaction) {
	okColor.Fprintf(out, "%s %.2f recorded (id=%s)\n", tx.Type, tx.Amount, tx.ID)
	if tx.Source != nil {
		fmt.Fprintf(out, "  %d balance: %.2f\n", tx.Source.Number, tx.Source.Balance)
	}
	if tx.Receiver != nil {
		fmt.Fprintf(out, "  %d balance: %.2f\n", tx.Receiver.Number, tx.Receiver.Balance)
	}
}

func numberOf(a *account.Account) string {
	if a == nil {
		return "-"
	}
	return strconv.FormatInt(a.Number, 10)
}

func parseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	return n, nil
}

func parseAmount(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return f, nil
}
