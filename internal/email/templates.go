package email

// Embedded bodies for the two account emails. Kept minimal; the frontend
// builds the actual links from the token.
const emailTemplates = `
{{define "activation"}}
<html>
<body>
  <h2>Welcome!</h2>
  <p>Use the token below to activate your account for {{.Email}}:</p>
  <p><strong>{{.Token}}</strong></p>
  <p>The token expires in 24 hours. If you did not register, ignore this email.</p>
</body>
</html>
{{end}}

{{define "password_reset"}}
<html>
<body>
  <h2>Password reset</h2>
  <p>A password reset was requested for {{.Email}}. Use this token to set a new password:</p>
  <p><strong>{{.Token}}</strong></p>
  <p>The token is valid for a short time and can be used once. If you did not request a reset, ignore this email.</p>
</body>
</html>
{{end}}
`
