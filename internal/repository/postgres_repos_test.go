package repository

import (
	"testing"
)

// 各Postgresリポジトリがインターフェースを満たすことはコンパイル時に
// 検証されるが、初期化の確認をテストとしても残す。

func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

func TestPostgresStudentRepo_ImplementsInterface(t *testing.T) {
	var _ StudentRepository = (*PostgresStudentRepo)(nil)
}

func TestPostgresPlanRepo_ImplementsInterface(t *testing.T) {
	var _ PlanRepository = (*PostgresPlanRepo)(nil)
}

func TestPostgresRegistrationRepo_ImplementsInterface(t *testing.T) {
	var _ RegistrationRepository = (*PostgresRegistrationRepo)(nil)
}

func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresStudentRepo_Initializes(t *testing.T) {
	if NewPostgresStudentRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresPlanRepo_Initializes(t *testing.T) {
	if NewPostgresPlanRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}

func TestNewPostgresRegistrationRepo_Initializes(t *testing.T) {
	if NewPostgresRegistrationRepo(nil) == nil {
		t.Fatal("expected non-nil repo")
	}
}
