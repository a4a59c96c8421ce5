package user

type SessionTokenIssuer interface {
	IssueToken(userID ID) (SessionToken, error)
}

type SessionTokenVerifier interface {
	VerifyToken(token SessionToken) (ID, error)
}
