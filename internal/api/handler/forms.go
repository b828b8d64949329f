package handler

// Inline pages keep the browser flow usable without a template engine.

const loginFormHTML = `<!DOCTYPE html>
<html>
<head><title>Log in</title></head>
<body>
<h1>Log in</h1>
<form method="post" action="/auth/login">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Log in</button>
</form>
<p><a href="/auth/register">Create an account</a></p>
</body>
</html>
`

const registerFormHTML = `<!DOCTYPE html>
<html>
<head><title>Register</title></head>
<body>
<h1>Register</h1>
<form method="post" action="/auth/register">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <label>Confirm password <input type="password" name="password_confirm" required></label>
  <label>Role
    <select name="role">
      <option value="PUBLISHER">Publisher</option>
      <option value="ADVERTISER">Advertiser</option>
    </select>
  </label>
  <label>Display name (publishers) <input type="text" name="display_name"></label>
  <label>Site domain (publishers) <input type="text" name="domain"></label>
  <label>Company name (advertisers) <input type="text" name="company_name"></label>
  <button type="submit">Register</button>
</form>
<p><a href="/auth/login">Already registered? Log in</a></p>
</body>
</html>
`

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>Ad Portal</title></head>
<body>
<h1>Ad Portal</h1>
<p><a href="/auth/login">Log in</a> or <a href="/auth/register">register</a>.</p>
</body>
</html>
`
