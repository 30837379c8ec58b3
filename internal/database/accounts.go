package database

func (db *PgGroupSpaceRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, username, password_hash, email FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Name, &u.Username, &u.PasswordHash, &u.EmailAddress); err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (db *PgGroupSpaceRepository) CreateUser(params CreateUserParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO users (name, username, password_hash, email) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, name, username, email",
		params.Name,
		params.Username,
		params.PasswordHash,
		params.EmailAddress,
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Name,
		&u.Username,
		&u.EmailAddress,
	)

	return u, err
}

func (db *PgGroupSpaceRepository) GetUserById(userId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, username, password_hash, email FROM users "+
			"WHERE id = $1 LIMIT 1",
		userId,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.EmailAddress,
	)

	return user, err
}

func (db *PgGroupSpaceRepository) GetUserByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, username, password_hash, email FROM users "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.EmailAddress,
	)

	return user, err
}

// UpdateUser updates name and email. A zero-row update is not an error: the
// caller has no way to distinguish a missing id from an unchanged row.
func (db *PgGroupSpaceRepository) UpdateUser(params UpdateUserParams) error {
	_, err := db.conn.Exec(
		"UPDATE users SET name = $2, email = $3 WHERE id = $1",
		params.UserId,
		params.Name,
		params.EmailAddress,
	)

	return err
}

// DeleteUser removes the user record only. Memberships, messages and
// participant rows referencing the id are left in place.
func (db *PgGroupSpaceRepository) DeleteUser(userId int) error {
	_, err := db.conn.Exec("DELETE FROM users WHERE id = $1", userId)

	return err
}

func (db *PgGroupSpaceRepository) SearchUsers(params SearchUsersParams) ([]User, error) {
	if params.ShowAll || params.Query == "" {
		return db.searchAll(params.ExcludeUserId)
	}

	pattern := "%" + params.Query + "%"
	result, err := db.conn.Query(
		"SELECT id, name, username, email FROM users "+
			"WHERE (name ILIKE $1 OR username ILIKE $1) AND id != $2 "+
			"ORDER BY name LIMIT 20",
		pattern,
		params.ExcludeUserId,
	)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	var users []User
	for result.Next() {
		var u User
		if err := result.Scan(&u.Id, &u.Name, &u.Username, &u.EmailAddress); err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, result.Err()
}

func (db *PgGroupSpaceRepository) searchAll(excludeUserId int) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, username, email FROM users "+
			"WHERE id != $1 ORDER BY name LIMIT 20",
		excludeUserId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Name, &u.Username, &u.EmailAddress); err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, rows.Err()
}
