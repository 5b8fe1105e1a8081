package resend

import (
	"context"
	"fmt"
	"log"

	resend "github.com/resend/resend-go/v2"
)

// Service sends the transactional email for invites and friend requests.
type Service struct {
	resendClient *resend.Client
	hostURL      string
}

// NewService creates a new empty service.
func NewService(apiKey, hostURL string) *Service {
	return &Service{
		resendClient: resend.NewClient(apiKey),
		hostURL:      hostURL,
	}
}

// SendInviteMail emails an organization invite with its accept link.
func (s Service) SendInviteMail(ctx context.Context, request InviteRequest, inviteCode string) error {
	body := inviteTemplate(request.OrganizationName, fmt.Sprintf("%s/join/%s", s.hostURL, inviteCode))
	params := &resend.SendEmailRequest{
		From:    "invites@gatherly.events",
		To:      []string{request.Email},
		Subject: fmt.Sprintf("You have been invited to %s", request.OrganizationName),
		Html:    body,
	}

	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send invite mail: %v", err)
		return err
	}
	return nil
}

// SendFriendRequestMail notifies a user about a new friend request.
func (s Service) SendFriendRequestMail(ctx context.Context, notice FriendNotice) error {
	body := friendTemplate(notice.FromName, fmt.Sprintf("%s/friends/requests", s.hostURL))
	params := &resend.SendEmailRequest{
		From:    "friends@gatherly.events",
		To:      []string{notice.ToEmail},
		Subject: fmt.Sprintf("%s sent you a friend request", notice.FromName),
		Html:    body,
	}

	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send friend request mail: %v", err)
		return err
	}
	return nil
}

func inviteTemplate(orgName, url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #007BFF;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
        .button:hover {
            background-color: #0056b3;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello,</h2>
        <p>You have been invited to join <strong>%s</strong>. Click the button below to accept:</p>
        <a href="%s" class="button">Join</a>
        <p>Best regards,<br>Gatherly</p>
    </div>
</body>
</html>`, orgName, url)
}

func friendTemplate(fromName, url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #007BFF;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello,</h2>
        <p><strong>%s</strong> wants to connect with you. Review the request here:</p>
        <a href="%s" class="button">View request</a>
        <p>Best regards,<br>Gatherly</p>
    </div>
</body>
</html>`, fromName, url)
}
