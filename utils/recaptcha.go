package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"taskboard/backend/logging"
)

type CaptchaResponse struct {
	Success     bool     `json:"success"`
	ChallengeTs string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// VerifyCaptcha checks a reCAPTCHA token against Google's verify
// endpoint. The caller supplies the client so the request can run
// behind a circuit breaker.
func VerifyCaptcha(client *http.Client, token string) (bool, error) {
	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		logging.Logger.Errorf("Event ID: VERIFY_CAPTCHA_SECRET_MISSING, Description: SECRET_KEY environment variable is not set.")
		return false, fmt.Errorf("SECRET_KEY is not set in environment variables")
	}

	data := url.Values{}
	data.Set("secret", secretKey)
	data.Set("response", token)

	resp, err := client.PostForm("https://www.google.com/recaptcha/api/siteverify", data)
	if err != nil {
		logging.Logger.Errorf("Event ID: VERIFY_CAPTCHA_HTTP_POST_FAILED, Description: Error sending request to Google API: %v", err)
		return false, fmt.Errorf("error sending request to Google API: %v", err)
	}
	defer resp.Body.Close()

	var captchaResp CaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&captchaResp); err != nil {
		logging.Logger.Errorf("Event ID: VERIFY_CAPTCHA_DECODE_FAILED, Description: Error decoding Google API response: %v", err)
		return false, fmt.Errorf("error decoding Google API response: %v", err)
	}

	if !captchaResp.Success {
		logging.Logger.Warnf("Event ID: VERIFY_CAPTCHA_FAILED, Description: reCAPTCHA verification failed. Error codes: %v", captchaResp.ErrorCodes)
	}
	return captchaResp.Success, nil
}
