package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	transactionsvc "github.com/vagnerwentz/bankapi/pkg/service/transaction"
	webaccount "github.com/vagnerwentz/bankapi/webapi/account"
	"github.com/vagnerwentz/bankapi/webapi/common"
)

// Routes registers the money movement endpoints. Each one answers 201 with
// the recorded transaction.
func Routes(app *fiber.App, txSvc *transactionsvc.Service) {
	app.Post("/transaction/deposit", Deposit(txSvc))
	app.Post("/transaction/withdraw", Withdraw(txSvc))
	app.Post("/transaction/transfer", Transfer(txSvc))
}

func Deposit(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.Deposit(c.UserContext(), input.toDTO())
		if err != nil {
			log.Errorf("Failed to deposit into %d: %v", input.Receiver, err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit successful", webaccount.ToTransactionDTO(tx))
	}
}

func Withdraw(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.Withdraw(c.UserContext(), input.toDTO())
		if err != nil {
			log.Errorf("Failed to withdraw from %d: %v", input.Source, err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal successful", webaccount.ToTransactionDTO(tx))
	}
}

func Transfer(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.Transfer(c.UserContext(), input.toDTO())
		if err != nil {
			log.Errorf("Failed to transfer %d -> %d: %v", input.Source, input.Receiver, err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", webaccount.ToTransactionDTO(tx))
	}
}
