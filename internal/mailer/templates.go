package mailer

import (
	"fmt"

	"backend/internal/models"
)

func orderConfirmationHTML(siteName string, order *models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d MMK</td>
			</tr>`, item.Name, item.Duration, item.Quantity, item.Price*int64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order Received</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you, %s!</h2>
		<p>We received your order <strong>%s</strong>. Please transfer the total
		to one of our payment accounts and submit the transaction details to
		complete your purchase.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Plan</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Duration</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Amount</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">%d MMK</td>
				</tr>
			</tfoot>
		</table>
		<p style="margin-top: 30px; color: #555;">%s</p>
	</div>
</body>
</html>`, order.Customer.Name, order.ID.Hex(), itemsHTML, order.TotalAmount, siteName)
}

func credentialsHTML(siteName string, order *models.Order) string {
	creds := order.Credentials
	if creds == nil {
		creds = &models.VPNCredentials{}
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Your VPN Account</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your VPN account is ready</h2>
		<p>Hi %s, your payment has been verified and your account details are below.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr><td style="padding: 8px; border: 1px solid #ddd; font-weight: bold;">Username</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd; font-weight: bold;">Password</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd; font-weight: bold;">Server</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
			<tr><td style="padding: 8px; border: 1px solid #ddd; font-weight: bold;">Expires</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
		</table>
		<p>Keep these details private. Contact support if anything does not work.</p>
		<p style="margin-top: 30px; color: #555;">%s</p>
	</div>
</body>
</html>`, order.Customer.Name, creds.Username, creds.Password, creds.ServerInfo, creds.ExpiryDate, siteName)
}
