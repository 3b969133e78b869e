// Package testhelpers provides shared utilities for testing the local project
// navigator: temporary source trees and sample sources.
package testhelpers

import (
	"os"
	"testing"
)

// SkipIfRoot skips tests that rely on permission errors, which root ignores
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("Skipping: permission checks do not apply to root")
	}
}

// TestData provides sample sources in the shapes the extractor recognizes
var TestData = struct {
	Service     string
	Component   string
	ArrowModule string
}{
	Service: `import { Injectable } from '@nestjs/common';

/**
 * Loads users from the repository.
 */
@Injectable()
export class UserService {
  constructor(private readonly repo: UserRepository) {}

  // Finds one user by id
  async findOne(id: string) {
    const user = await this.repo.find(id);
    if (!user) {
      throw new NotFoundException();
    }
    return user;
  }

  private async audit(event: string) {
    this.log.push({ event });
  }
}
`,

	Component: `export default {
  name: 'UserCard',
  data() {
    return { open: false };
  },
  methods: {
    toggle() {
      this.open = !this.open;
    },
  },
};
`,

	ArrowModule: `export const double = (n: number) => n * 2;

export function sum(a: number, b: number): number {
  return a + b;
}

const LIMIT = 10;
`,
}
